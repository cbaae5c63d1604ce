package routes

import (
	"github.com/faouziesf/cod-manager/config"
	"github.com/faouziesf/cod-manager/controllers"
	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/services"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(r *gin.Engine, cfg *config.Config) {
	notifications := services.NewNotificationService(utils.GetDB(), cfg)
	notificationController := controllers.NewNotificationController(notifications)

	notificationGroup := r.Group("/notifications", middleware.JWTAuthMiddleware())
	{
		notificationGroup.GET("", notificationController.List)
		notificationGroup.GET("/unread-count", notificationController.UnreadCount)
		notificationGroup.POST("/mark-all-read", notificationController.MarkAllRead)
	}
}
