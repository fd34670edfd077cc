package utils

import (
	"github.com/gin-gonic/gin"
)

const currentUserKey = "user"

// LoginUser is the authenticated caller as stored on the gin context.
type LoginUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func SetUser(c *gin.Context, user *LoginUser) {
	c.Set(currentUserKey, user)
}

// GetUser returns the caller set by the auth middleware.
func GetUser(c *gin.Context) (*LoginUser, error) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, CreateUnauthorizedError("")
	}
	user, ok := v.(*LoginUser)
	if !ok || user == nil || user.ID == "" {
		return nil, CreateUnauthorizedError("")
	}
	return user, nil
}

// UserID returns the caller id or an empty string for anonymous requests.
func UserID(c *gin.Context) string {
	if user, err := GetUser(c); err == nil {
		return user.ID
	}
	return ""
}
