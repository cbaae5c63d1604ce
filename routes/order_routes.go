package routes

import (
	"github.com/faouziesf/cod-manager/config"
	"github.com/faouziesf/cod-manager/controllers"
	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/services"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(r *gin.Engine, cfg *config.Config) {
	db := utils.GetDB()
	settings := services.NewSettingService(db, utils.GetRedis())
	notifications := services.NewNotificationService(db, cfg)
	orderController := controllers.NewOrderController(db, settings, notifications)

	orderGroup := r.Group("/orders", middleware.JWTAuthMiddleware())
	{
		orderGroup.GET("", orderController.List)
		orderGroup.POST("", orderController.Create)
		orderGroup.GET("/process/:type", orderController.Process)
		orderGroup.GET("/:id", orderController.Get)
		orderGroup.PUT("/:id", orderController.Update)
		orderGroup.POST("/:id/process", orderController.ProcessAction)

		orderGroup.DELETE("/:id",
			middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleManager),
			orderController.Delete)
		orderGroup.POST("/:id/assign",
			middleware.RequireRole(models.RoleAdmin, models.RoleManager),
			orderController.Assign)
	}
}
