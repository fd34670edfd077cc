package routes

import (
	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterTaskRoutes(api *gin.RouterGroup, d *Dependencies) {
	tc := controllers.NewTaskController(d.Tasks)
	load := middleware.Loader(d.Tasks.Get)

	tasks := api.Group("/tasks")
	d.authenticated(tasks)
	tasks.Use(d.invalidate(customersCache))

	tasks.POST("/", d.auditCreate("task"), tc.Create)
	tasks.GET("/", tc.List)
	tasks.GET("/overdue", tc.Overdue)
	tasks.GET("/today", tc.Today)
	tasks.GET("/deal/:dealId", tc.ByDeal)
	tasks.GET("/customer/:customerId", tc.ByCustomer)
	tasks.GET("/:id", tc.Get)
	tasks.PUT("/:id", d.audit("task", load), tc.Update)
	tasks.PATCH("/:id/complete", d.audit("task", load), tc.Complete)
	tasks.DELETE("/:id", d.audit("task", load), tc.Delete)
}
