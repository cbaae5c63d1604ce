package controllers

import (
	"net/http"
	"strconv"

	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (nc *NotificationController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	notifications, err := nc.notifications.ListForUser(user, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": notifications, "success": true})
}

func (nc *NotificationController) UnreadCount(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	count, err := nc.notifications.UnreadCount(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"unread": count}, "success": true})
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := nc.notifications.MarkAllRead(user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  gin.H{},
		"success": true,
		"message": "All notifications marked as read",
	})
}
