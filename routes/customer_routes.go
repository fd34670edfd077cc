package routes

import (
	"context"

	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/models"

	"github.com/gin-gonic/gin"
)

// customerAudit is a customer shaped like its update body: tags are names.
type customerAudit struct {
	models.Customer
	Tags []string `json:"tags"`
}

func auditableCustomer(view *models.CustomerView) customerAudit {
	names := make([]string, 0, len(view.Tags))
	for _, t := range view.Tags {
		names = append(names, t.Name)
	}
	return customerAudit{Customer: view.Customer, Tags: names}
}

func RegisterCustomerRoutes(api *gin.RouterGroup, d *Dependencies) {
	cc := controllers.NewCustomerController(d.Customers)
	load := func(ctx context.Context, id string) (interface{}, error) {
		view, err := d.Customers.Get(ctx, id, false)
		if err != nil {
			return nil, err
		}
		return auditableCustomer(view), nil
	}

	customers := api.Group("/customers")
	d.authenticated(customers)
	customers.Use(d.invalidate(customersCache))

	customers.POST("/", d.auditCreate("customer"), cc.Create)
	customers.GET("/", d.cached(customersCache), cc.List)
	customers.GET("/stats/overview", d.cached(customersCache), cc.Overview)
	customers.POST("/segments", cc.Segments)
	customers.GET("/export/:format", cc.Export)
	customers.POST("/import", cc.Import)
	customers.GET("/tags/:tagId/customers", cc.CustomersWithTag)

	customers.GET("/:id", d.cached(customersCache), cc.Get)
	customers.PUT("/:id", d.audit("customer", load), cc.Update)
	customers.DELETE("/:id", d.audit("customer", load), cc.Delete)
	customers.POST("/:id/contacts", d.auditCreate("contact"), cc.AddContactMethod)
	customers.POST("/:id/custom-fields", d.audit("customer", load), cc.AddCustomField)
	customers.GET("/:id/timeline", cc.Timeline)
	customers.GET("/:id/stats", cc.Stats)

	customers.GET("/:id/tags", cc.Tags)
	customers.POST("/:id/tags/:tagId", cc.AddTag)
	customers.DELETE("/:id/tags/:tagId", cc.RemoveTag)
}
