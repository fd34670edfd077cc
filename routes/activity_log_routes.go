package routes

import (
	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterActivityLogRoutes exposes the audit trail to managers. There is
// no write route: rows only come from the audit middleware.
func RegisterActivityLogRoutes(api *gin.RouterGroup, d *Dependencies) {
	ac := controllers.NewActivityLogController(d.ActivityLogs)

	logs := api.Group("/activity-logs")
	d.authenticated(logs)
	logs.Use(middleware.Authorize(managers...))

	logs.GET("/", ac.List)
	logs.GET("/user/:userId", ac.ByUser)
	logs.GET("/:id", ac.Get)
}
