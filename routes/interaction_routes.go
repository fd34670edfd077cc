package routes

import (
	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterInteractionRoutes(api *gin.RouterGroup, d *Dependencies) {
	ic := controllers.NewInteractionController(d.Interactions)
	load := middleware.Loader(d.Interactions.Get)

	interactions := api.Group("/interactions")
	d.authenticated(interactions)
	interactions.Use(d.invalidate(customersCache))

	interactions.POST("/", d.auditCreate("interaction"), ic.Create)
	interactions.GET("/", ic.List)
	interactions.GET("/deal/:dealId", ic.ByDeal)
	interactions.GET("/customer/:customerId", ic.ByCustomer)
	interactions.GET("/:id", ic.Get)
	interactions.PUT("/:id", d.audit("interaction", load), ic.Update)
	interactions.PUT("/:id/complete", d.audit("interaction", load), ic.Complete)
	interactions.DELETE("/:id", d.audit("interaction", load), ic.Delete)
}
