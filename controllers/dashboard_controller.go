package controllers

import (
	"net/http"

	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/services"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	orders   *services.OrderService
	users    *services.UserService
	products *services.ProductService
	settings *services.SettingService
}

func NewDashboardController(db *gorm.DB, settings *services.SettingService) *DashboardController {
	return &DashboardController{
		orders:   services.NewOrderService(db),
		users:    services.NewUserService(db),
		products: services.NewProductService(db),
		settings: settings,
	}
}

// Index assembles the landing screen in one call: queue counts,
// period statistics, stock alerts and, for admins, trial days left.
func (dc *DashboardController) Index(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	dc.users.TouchActivity(user)

	settings, err := dc.settings.ForUser(user)
	if err != nil {
		respondError(c, err)
		return
	}

	counts, err := dc.orders.AvailableOrderCount(user, settings)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := dc.orders.OrderStatistics(user, c.DefaultQuery("period", "today"))
	if err != nil {
		respondError(c, err)
		return
	}

	result := gin.H{
		"queue":      counts,
		"statistics": stats,
	}

	if user.IsAdmin() || user.IsManager() {
		low, err := dc.products.LowStockProducts(user, 5)
		if err != nil {
			respondError(c, err)
			return
		}
		result["low_stock"] = low
	}

	if user.IsAdmin() && user.TrialEndsAt != nil {
		days := int(user.TrialEndsAt.Sub(utils.TunisTime()).Hours() / 24)
		if days < 0 {
			days = 0
		}
		result["trial_days_left"] = days
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "success": true})
}

// Counts returns just the queue counters, polled by the processing UI.
func (dc *DashboardController) Counts(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	settings, err := dc.settings.ForUser(user)
	if err != nil {
		respondError(c, err)
		return
	}

	counts, err := dc.orders.AvailableOrderCount(user, settings)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": counts, "success": true})
}

func (dc *DashboardController) Statistics(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	period := c.DefaultQuery("period", "today")
	stats, err := dc.orders.OrderStatistics(user, period)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"period":            period,
			"statistics":        stats,
			"formatted_revenue": utils.FormatTND(stats.Revenue),
		},
		"success": true,
	})
}
