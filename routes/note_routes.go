package routes

import (
	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterNoteRoutes(api *gin.RouterGroup, d *Dependencies) {
	nc := controllers.NewNoteController(d.Notes)
	load := middleware.Loader(d.Notes.Get)

	notes := api.Group("/notes")
	d.authenticated(notes)
	notes.Use(d.invalidate(customersCache))

	notes.POST("/", d.auditCreate("note"), nc.Create)
	notes.GET("/", nc.List)
	notes.GET("/:id", nc.Get)
	notes.GET("/:id/:ownerId", nc.ByOwner)
	notes.PUT("/:id", d.audit("note", load), nc.Update)
	notes.DELETE("/:id", d.audit("note", load), nc.Delete)
}
