package controllers

import (
	"net/http"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

type TagController struct {
	tags *service.TagService
}

func NewTagController(tags *service.TagService) *TagController {
	return &TagController{tags: tags}
}

func (tc *TagController) Create(c *gin.Context) {
	var req models.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := tc.tags.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, tag, "Tag created successfully", http.StatusCreated)
}

func (tc *TagController) List(c *gin.Context) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := tc.tags.List(c.Request.Context(), page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

func (tc *TagController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tag, err := tc.tags.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, tag, "")
}

func (tc *TagController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateTagRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := tc.tags.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, tag, "Tag updated successfully")
}

// Delete removes the tag and unlinks it from every customer.
func (tc *TagController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := tc.tags.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"id": id}, "Tag deleted successfully")
}
