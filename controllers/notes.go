package controllers

import (
	"net/http"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

type NoteController struct {
	notes *service.NoteService
}

func NewNoteController(notes *service.NoteService) *NoteController {
	return &NoteController{notes: notes}
}

func (nc *NoteController) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	note, err := nc.notes.Create(c.Request.Context(), req, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, note, "Note created successfully", http.StatusCreated)
}

// noteQuery filters by owner. Both halves must be given together.
type noteQuery struct {
	OwnerType models.OwnerType `form:"ownerType" binding:"required_with=OwnerID,omitempty,oneof=contact deal task interaction"`
	OwnerID   string           `form:"ownerId" binding:"required_with=OwnerType,omitempty,uuid"`
}

func (nc *NoteController) List(c *gin.Context) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	var q noteQuery
	if !bindQuery(c, &q) {
		return
	}
	var filter models.NoteFilter
	if q.OwnerType != "" {
		filter.Owner = &models.NoteOwner{Type: q.OwnerType, ID: q.OwnerID}
	}

	result, err := nc.notes.List(c.Request.Context(), filter, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

// ByOwner lists the notes of one record, e.g. /notes/deals/<dealId>. The
// owner type sits in the ":id" segment because it shares the wildcard with Get.
func (nc *NoteController) ByOwner(c *gin.Context) {
	ownerID, ok := pathID(c, "ownerId")
	if !ok {
		return
	}
	page, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := nc.notes.ListByOwner(c.Request.Context(), c.Param("id"), ownerID, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

func (nc *NoteController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	note, err := nc.notes.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, note, "")
}

func (nc *NoteController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	note, err := nc.notes.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, note, "Note updated successfully")
}

func (nc *NoteController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := nc.notes.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"id": id}, "Note deleted successfully")
}
