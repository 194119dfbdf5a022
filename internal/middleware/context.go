package middleware

import (
	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/sempozyum/internal/app/auth"
	"github.com/yigit/sempozyum/internal/app/models"
)

// CurrentUserID returns the authenticated user's ID
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}

// CurrentRole returns the authenticated user's role
func CurrentRole(c *gin.Context) (models.RoleType, bool) {
	v, exists := c.Get(ContextRoleType)
	if !exists {
		return "", false
	}
	role, ok := v.(models.RoleType)
	return role, ok
}

// CurrentActor returns the caller as an authorization subject
func CurrentActor(c *gin.Context) (appauth.Actor, bool) {
	id, ok := CurrentUserID(c)
	if !ok {
		return appauth.Actor{}, false
	}
	role, ok := CurrentRole(c)
	if !ok {
		return appauth.Actor{}, false
	}
	return appauth.Actor{UserID: id, Role: role}, true
}
