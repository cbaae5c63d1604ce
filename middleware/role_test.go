package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/faouziesf/cod-manager/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleRouter(user *models.User, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", func(c *gin.Context) {
		if user != nil {
			c.Set("user", user)
		}
		c.Next()
	}, RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestRequireRoleAllows(t *testing.T) {
	r := roleRouter(&models.User{Role: models.RoleManager}, models.RoleAdmin, models.RoleManager)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleDeniesWrongRole(t *testing.T) {
	r := roleRouter(&models.User{Role: models.RoleEmployee}, models.RoleAdmin, models.RoleManager)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleDeniesUnauthenticated(t *testing.T) {
	r := roleRouter(nil, models.RoleAdmin)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
