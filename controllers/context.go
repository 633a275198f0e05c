package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the authenticated principal set by the auth
// middleware.
func currentUserID(c *gin.Context) (uint, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, errors.New("user id not found in context")
	}
	userID, ok := value.(uint)
	if !ok {
		return 0, errors.New("invalid user id in context")
	}
	return userID, nil
}

func currentRole(c *gin.Context) string {
	value, exists := c.Get("role")
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}
