package routes

import (
	"time"

	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/middleware"
	"github.com/BerniceZTT/crm_api/models"

	"github.com/gin-gonic/gin"
)

const resetRequestsPerHour = 3

func RegisterUserRoutes(api *gin.RouterGroup, d *Dependencies) {
	uc := controllers.NewUserController(d.Users, d.Tokens, d.SecureCookies)
	limit := middleware.RateLimit(d.Cache, "auth", d.RateLimitMax, d.RateLimitWindow)

	public := api.Group("/users")
	{
		public.POST("/register", limit, uc.Register)
		public.POST("/login", limit, uc.Login)
		public.POST("/refresh-token", limit, uc.RefreshToken)
		public.POST("/request-password-reset",
			middleware.RateLimit(d.Cache, "password-reset", resetRequestsPerHour, time.Hour),
			uc.RequestPasswordReset)
		public.POST("/reset-password", limit, uc.ResetPassword)
	}

	users := api.Group("/users")
	d.authenticated(users)
	{
		users.GET("/logout", uc.Logout)
		users.GET("/profile", uc.Profile)
		users.GET("/profile/:id", middleware.Authorize(salesRoles...), uc.ProfileByID)
		users.GET("/", middleware.Authorize(string(models.UserRoleADMIN)), uc.List)
		users.POST("/", middleware.Authorize(string(models.UserRoleADMIN)), d.auditCreate("user"), uc.Create)
		users.DELETE("/remove/:id", d.audit("user", middleware.Loader(d.Users.Profile)), uc.Remove)
	}
}
