package routes

import (
	"github.com/faouziesf/cod-manager/controllers"
	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/services"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/gin-gonic/gin"
)

func SetupDashboardRoutes(r *gin.Engine) {
	db := utils.GetDB()
	settings := services.NewSettingService(db, utils.GetRedis())
	dashboardController := controllers.NewDashboardController(db, settings)

	dashboardGroup := r.Group("/dashboard", middleware.JWTAuthMiddleware())
	{
		dashboardGroup.GET("", dashboardController.Index)
		dashboardGroup.GET("/counts", dashboardController.Counts)
		dashboardGroup.GET("/statistics", dashboardController.Statistics)
	}
}
