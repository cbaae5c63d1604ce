package routes

import (
	"github.com/faouziesf/cod-manager/controllers"
	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.Engine) {
	authController := controllers.NewAuthController(utils.GetDB())

	r.POST("/auth/login", authController.Login)

	authGroup := r.Group("/auth", middleware.JWTAuthMiddleware())
	{
		authGroup.POST("/logout", authController.Logout)
		authGroup.POST("/change-password", authController.ChangePassword)
	}
}
