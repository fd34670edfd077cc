package routes

import (
	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterTagRoutes(api *gin.RouterGroup, d *Dependencies) {
	tc := controllers.NewTagController(d.Tags)
	load := middleware.Loader(d.Tags.Get)

	tags := api.Group("/tags")
	d.authenticated(tags)
	tags.Use(d.invalidate(customersCache))

	tags.POST("/", d.auditCreate("tag"), tc.Create)
	tags.GET("/", tc.List)
	tags.GET("/:id", tc.Get)
	tags.PUT("/:id", d.audit("tag", load), tc.Update)
	tags.DELETE("/:id", d.audit("tag", load), tc.Delete)
}
