package routes

import (
	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterContactRoutes(api *gin.RouterGroup, d *Dependencies) {
	cc := controllers.NewContactController(d.Contacts)
	load := middleware.Loader(d.Contacts.Get)

	contacts := api.Group("/contacts")
	d.authenticated(contacts)
	contacts.Use(d.invalidate(customersCache))

	contacts.POST("/", d.auditCreate("contact"), cc.Create)
	contacts.GET("/", cc.List)
	contacts.GET("/search", cc.Search)
	contacts.GET("/customer/:customerId", cc.ByCustomer)
	contacts.GET("/type/:type", cc.ByType)
	contacts.GET("/:id", cc.Get)
	contacts.PUT("/:id", d.audit("contact", load), cc.Update)
	contacts.DELETE("/:id", d.audit("contact", load), cc.Delete)
}
