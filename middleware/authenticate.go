package middleware

import (
	"strings"

	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

// TokenCookie carries the access token for browser clients.
const TokenCookie = "token"

// Authenticate verifies the access token from the Authorization header or,
// failing that, the token cookie, and stores the caller on the context.
func Authenticate(tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.Logger.Debug().Str("path", c.Request.URL.Path).Msg("request without token")
			utils.HandleError(c, utils.CreateUnauthorizedError("Access token required"))
			return
		}

		claims, err := tokens.ParseAccessToken(token)
		if err != nil {
			utils.Logger.Info().
				Err(err).
				Str("path", c.Request.URL.Path).
				Str("token", utils.ShortenSecret(token)).
				Msg("token rejected")
			utils.HandleError(c, utils.CreateUnauthorizedError("Invalid or expired token"))
			return
		}

		utils.SetUser(c, &utils.LoginUser{ID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// Authorize lets through callers whose role is in roles. It must run after Authenticate.
func Authorize(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user, err := utils.GetUser(c)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		if !allowed[user.Role] {
			utils.Logger.Info().
				Str("userId", user.ID).
				Str("role", user.Role).
				Str("path", c.Request.URL.Path).
				Msg("insufficient permissions")
			utils.HandleError(c, utils.CreateForbiddenError())
			return
		}
		c.Next()
	}
}
