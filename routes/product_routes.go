package routes

import (
	"github.com/faouziesf/cod-manager/controllers"
	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/gin-gonic/gin"
)

func SetupProductRoutes(r *gin.Engine) {
	productController := controllers.NewProductController(utils.GetDB())

	productGroup := r.Group("/products", middleware.JWTAuthMiddleware())
	{
		productGroup.GET("", productController.List)
		productGroup.GET("/:id", productController.Get)

		productGroup.GET("/stock",
			middleware.RequireRole(models.RoleAdmin, models.RoleManager),
			productController.Stock)
		productGroup.POST("",
			middleware.RequireRole(models.RoleAdmin, models.RoleManager),
			productController.Create)
		productGroup.PUT("/:id",
			middleware.RequireRole(models.RoleAdmin, models.RoleManager),
			productController.Update)
		productGroup.DELETE("/:id",
			middleware.RequireRole(models.RoleAdmin),
			productController.Delete)
	}
}
