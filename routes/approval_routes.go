package routes

import (
	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterApprovalRoutes(api *gin.RouterGroup, d *Dependencies) {
	ac := controllers.NewApprovalController(d.Approvals)
	load := middleware.Loader(d.Approvals.Get)

	approvals := api.Group("/approvals")
	d.authenticated(approvals)

	approvals.POST("/", d.auditCreate("approval"), ac.Create)
	approvals.GET("/", ac.List)
	approvals.POST("/process",
		middleware.Authorize(managers...),
		middleware.Audit(d.Audit, middleware.AuditDescriptor{
			Entity: "approval",
			ID:     middleware.BodyID("approvalRequestId"),
			Load:   load,
		}),
		ac.Process)
	approvals.GET("/:id", ac.Get)
	approvals.POST("/:id/resubmit", d.audit("approval", load), ac.Resubmit)
}
