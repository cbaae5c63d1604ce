package routes

import (
	"github.com/faouziesf/cod-manager/controllers"
	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/services"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(r *gin.Engine) {
	db := utils.GetDB()
	settings := services.NewSettingService(db, utils.GetRedis())
	userController := controllers.NewUserController(db, settings)

	userGroup := r.Group("/users", middleware.JWTAuthMiddleware())
	{
		userGroup.GET("/online", userController.Online)

		managed := userGroup.Group("",
			middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleManager))
		{
			managed.GET("", userController.List)
			managed.GET("/:id", userController.Get)
			managed.POST("", userController.Create)
			managed.PUT("/:id", userController.Update)
		}
	}
}
