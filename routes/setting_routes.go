package routes

import (
	"github.com/faouziesf/cod-manager/controllers"
	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/services"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/gin-gonic/gin"
)

func SetupSettingRoutes(r *gin.Engine) {
	settings := services.NewSettingService(utils.GetDB(), utils.GetRedis())
	settingController := controllers.NewSettingController(settings)

	settingGroup := r.Group("/settings", middleware.JWTAuthMiddleware())
	{
		settingGroup.GET("", settingController.Get)
		settingGroup.PUT("",
			middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin),
			settingController.Update)
	}
}
