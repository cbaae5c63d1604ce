package controllers

import (
	"net/http"
	"strconv"

	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	users    *services.UserService
	settings *services.SettingService
}

func NewUserController(db *gorm.DB, settings *services.SettingService) *UserController {
	return &UserController{
		users:    services.NewUserService(db),
		settings: settings,
	}
}

// List returns the users of one role visible to the caller.
func (uc *UserController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	role := c.DefaultQuery("role", models.RoleEmployee)
	users, err := uc.users.UsersByRole(user, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": users, "success": true})
}

func (uc *UserController) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	target, err := uc.users.GetScopedUser(uint(id), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": target, "success": true})
}

// Create adds a user under the caller. Seat limits from the tenant
// settings apply to managers and employees.
func (uc *UserController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req services.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if !user.IsSuperAdmin() {
		settings, err := uc.settings.ForUser(user)
		if err != nil {
			respondError(c, err)
			return
		}
		role := req.Role
		if user.IsManager() || role == "" {
			role = models.RoleEmployee
		}
		ok, err := uc.users.CanCreateMore(user, role, settings)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Seat limit reached for this role"})
			return
		}
	}

	created, err := uc.users.CreateUser(req, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result":  created,
		"success": true,
		"message": "User created",
	})
}

func (uc *UserController) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	target, err := uc.users.GetScopedUser(uint(id), user)
	if err != nil {
		respondError(c, err)
		return
	}

	var req services.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	updated, err := uc.users.UpdateUser(target, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  updated,
		"success": true,
		"message": "User updated",
	})
}

// Online lists the team members active within the last 15 minutes.
func (uc *UserController) Online(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	users, err := uc.users.OnlineUsers(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": users, "success": true})
}
