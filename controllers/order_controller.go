package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct {
	orders        *services.OrderService
	settings      *services.SettingService
	notifications *services.NotificationService
}

func NewOrderController(db *gorm.DB, settings *services.SettingService, notifications *services.NotificationService) *OrderController {
	return &OrderController{
		orders:        services.NewOrderService(db),
		settings:      settings,
		notifications: notifications,
	}
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}

// List returns the paginated browse view for one status.
func (oc *OrderController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))
	status := c.DefaultQuery("type", "standard")
	search := c.Query("search")

	orders, total, err := oc.orders.ListOrders(user, status, search, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"orders": orders,
			"total":  total,
			"page":   page,
			"limit":  limit,
		},
		"success": true,
	})
}

func (oc *OrderController) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := oc.orders.GetOrder(id, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": order, "success": true})
}

func (oc *OrderController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req services.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	order, err := oc.orders.CreateOrder(req, user)
	if err != nil {
		respondError(c, err)
		return
	}

	oc.notifications.NotifyOrderCreated(order)

	c.JSON(http.StatusCreated, gin.H{
		"result":  order,
		"success": true,
		"message": "Order created",
	})
}

func (oc *OrderController) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req services.UpdateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	order, err := oc.orders.UpdateOrder(id, req, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  order,
		"success": true,
		"message": "Order updated",
	})
}

func (oc *OrderController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := oc.orders.DeleteOrder(id, user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  gin.H{"id": id},
		"success": true,
		"message": "Order deleted",
	})
}

// Process hands the caller the next order to work on. When the
// requested queue is empty it cascades standard -> dated -> old before
// reporting no work available.
func (oc *OrderController) Process(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	typ, ok := models.ParseOrderStatus(c.Param("type"))
	if !ok || !typ.IsProcessable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be standard, dated or old"})
		return
	}

	settings, err := oc.settings.ForUser(user)
	if err != nil {
		respondError(c, err)
		return
	}

	order, fromQueue, err := oc.orders.NextOrderForProcessing(user, settings, typ)
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusOK, gin.H{
			"result": gin.H{
				"order": nil,
				"type":  typ,
			},
			"success": true,
			"message": "Coffee break! No orders available to process right now.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"order": order,
			"type":  fromQueue,
		},
		"success": true,
	})
}

type processActionRequest struct {
	Action         string   `json:"action" binding:"required"`
	Note           string   `json:"note"`
	ConfirmedPrice *float64 `json:"confirmed_price"`
	ScheduledDate  string   `json:"scheduled_date"`
}

// ProcessAction applies one of the call outcomes to an order.
func (oc *OrderController) ProcessAction(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req processActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	settings, err := oc.settings.ForUser(user)
	if err != nil {
		respondError(c, err)
		return
	}

	var order *models.Order
	switch req.Action {
	case "confirm":
		order, err = oc.orders.ConfirmOrder(id, req.ConfirmedPrice, req.Note, user)
		if err == nil {
			oc.notifications.NotifyOrderConfirmed(order)
		}
	case "cancel":
		order, err = oc.orders.CancelOrder(id, req.Note, user)
	case "date":
		var date *time.Time
		if req.ScheduledDate != "" {
			parsed, perr := time.Parse("2006-01-02", req.ScheduledDate)
			if perr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_date must be YYYY-MM-DD"})
				return
			}
			date = &parsed
		}
		order, err = oc.orders.ScheduleOrder(id, date, req.Note, user)
		if err == nil {
			oc.notifications.NotifyOrderDated(order)
		}
	case "no_answer":
		order, err = oc.orders.NoAnswerOrder(id, req.Note, user, settings)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be confirm, cancel, date or no_answer"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  order,
		"success": true,
		"message": "Action applied",
	})
}

type assignRequest struct {
	EmployeeID uint `json:"employee_id" binding:"required"`
}

// Assign hands the order to an employee of the caller's scope. The
// previous holder gets an unassignment notification.
func (oc *OrderController) Assign(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	var employee models.User
	if err := oc.orders.DB.First(&employee, req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	if employee.AdminID == nil || *employee.AdminID != user.TenantID() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Employee is outside your scope"})
		return
	}
	if user.IsManager() && (employee.ManagerID == nil || *employee.ManagerID != user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Employee is outside your scope"})
		return
	}

	current, err := oc.orders.GetOrder(id, user)
	if err != nil {
		respondError(c, err)
		return
	}
	previousAssignee := current.Assignee

	order, err := oc.orders.AssignOrder(id, &employee, user)
	if err != nil {
		respondError(c, err)
		return
	}

	oc.notifications.NotifyOrderAssigned(order, previousAssignee)

	c.JSON(http.StatusOK, gin.H{
		"result":  order,
		"success": true,
		"message": "Order assigned",
	})
}
