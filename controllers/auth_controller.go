package controllers

import (
	"net/http"
	"os"

	"github.com/faouziesf/cod-manager/middleware"
	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if rdb := utils.GetRedis(); rdb != nil {
		if ok, msg := utils.CanAttemptLogin(rdb, req.Email); !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": msg})
			return
		}
		utils.MarkLoginAttempt(rdb, req.Email)
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, os.Getenv("JWT_SECRET"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"token": token,
			"user":  user,
		},
		"success": true,
	})
}

// Logout blacklists the current token for its remaining lifetime.
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No token to revoke"})
		return
	}
	if rdb := utils.GetRedis(); rdb != nil {
		claims, err := utils.ParseJWT(token, os.Getenv("JWT_SECRET"))
		if err == nil {
			rdb.Set(utils.RedisCtx(), "blacklist:"+token, 1, utils.TokenExpiry(claims))
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"result":  gin.H{},
		"success": true,
		"message": "Logged out",
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	if err := ac.db.Model(user).Update("password", hash).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  gin.H{},
		"success": true,
		"message": "Password updated",
	})
}
