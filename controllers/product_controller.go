package controllers

import (
	"net/http"
	"strconv"

	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{products: services.NewProductService(db)}
}

func (pc *ProductController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var err error
	var result interface{}
	if c.Query("active") == "true" {
		result, err = pc.products.ActiveProductsForUser(user)
	} else {
		result, err = pc.products.ProductsForUser(user)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "success": true})
}

func (pc *ProductController) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, err := pc.products.GetProduct(uint(id), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": product, "success": true})
}

func (pc *ProductController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req services.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	product, err := pc.products.CreateProduct(req, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result":  product,
		"success": true,
		"message": "Product created",
	})
}

func (pc *ProductController) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req services.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	product, err := pc.products.UpdateProduct(uint(id), req, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  product,
		"success": true,
		"message": "Product updated",
	})
}

func (pc *ProductController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := pc.products.DeleteProduct(uint(id), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  gin.H{"id": id},
		"success": true,
		"message": "Product deleted",
	})
}

// Stock reports products running low or already out of stock, plus
// the non-terminal orders blocked by the missing stock.
func (pc *ProductController) Stock(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	threshold, _ := strconv.Atoi(c.DefaultQuery("threshold", "5"))

	low, err := pc.products.LowStockProducts(user, threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := pc.products.OutOfStockProducts(user)
	if err != nil {
		respondError(c, err)
		return
	}
	blocked, err := pc.products.OrdersWithOutOfStockProducts(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"low_stock":      low,
			"out_of_stock":   out,
			"blocked_orders": blocked,
		},
		"success": true,
	})
}
