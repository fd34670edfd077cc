package routes

import (
	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterDealRoutes(api *gin.RouterGroup, d *Dependencies) {
	dc := controllers.NewDealController(d.Deals)
	load := middleware.Loader(d.Deals.Get)

	deals := api.Group("/deals")
	d.authenticated(deals)
	deals.Use(d.invalidate(customersCache, dealsCache))

	deals.POST("/", d.auditCreate("deal"), dc.Create)
	deals.GET("/", dc.List)
	deals.GET("/pipeline/stats", d.cached(dealsCache), dc.PipelineStats)
	deals.GET("/:id", dc.Get)
	deals.PUT("/:id", d.audit("deal", load), dc.Update)
	deals.PUT("/:id/stage", d.audit("deal", load), dc.UpdateStage)
	deals.DELETE("/:id", d.audit("deal", load), dc.Delete)
}
