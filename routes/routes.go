package routes

import (
	"github.com/faouziesf/cod-manager/config"
	"github.com/faouziesf/cod-manager/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates the gin.Engine and registers every route group.
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	SetupAuthRoutes(r)
	SetupOrderRoutes(r, cfg)
	SetupProductRoutes(r)
	SetupUserRoutes(r)
	SetupSettingRoutes(r)
	SetupDashboardRoutes(r)
	SetupNotificationRoutes(r, cfg)

	return r
}
