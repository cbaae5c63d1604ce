package controllers

import (
	"net/http"
	"strconv"

	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/services"

	"github.com/gin-gonic/gin"
)

type SettingController struct {
	settings *services.SettingService
}

func NewSettingController(settings *services.SettingService) *SettingController {
	return &SettingController{settings: settings}
}

// tenantForCall resolves which tenant's settings the caller may touch.
// Super admins can address any tenant with ?admin_id=, everyone else
// only their own.
func (sc *SettingController) tenantForCall(c *gin.Context) (uint, bool) {
	user, _ := middleware.CurrentUser(c)

	if user.IsSuperAdmin() {
		if raw := c.Query("admin_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin_id"})
				return 0, false
			}
			return uint(id), true
		}
	}
	return user.TenantID(), true
}

func (sc *SettingController) Get(c *gin.Context) {
	adminID, ok := sc.tenantForCall(c)
	if !ok {
		return
	}

	setting, err := sc.settings.ForTenant(adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": setting, "success": true})
}

func (sc *SettingController) Update(c *gin.Context) {
	adminID, ok := sc.tenantForCall(c)
	if !ok {
		return
	}

	var req services.SettingUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	setting, err := sc.settings.Update(adminID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  setting,
		"success": true,
		"message": "Settings updated",
	})
}
