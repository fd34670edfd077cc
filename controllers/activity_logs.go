package controllers

import (
	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

// ActivityLogController exposes the audit trail read-only.
type ActivityLogController struct {
	logs *service.ActivityLogService
}

func NewActivityLogController(logs *service.ActivityLogService) *ActivityLogController {
	return &ActivityLogController{logs: logs}
}

type activityLogQuery struct {
	Entity   string `form:"entity" binding:"omitempty,max=50"`
	EntityID string `form:"entityId" binding:"omitempty,uuid"`
	UserID   string `form:"userId" binding:"omitempty,uuid"`
}

func (ac *ActivityLogController) List(c *gin.Context) {
	var q activityLogQuery
	if !bindQuery(c, &q) {
		return
	}
	ac.list(c, models.ActivityLogFilter{Entity: q.Entity, EntityID: q.EntityID, UserID: q.UserID})
}

func (ac *ActivityLogController) ByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	ac.list(c, models.ActivityLogFilter{UserID: userID})
}

func (ac *ActivityLogController) list(c *gin.Context, filter models.ActivityLogFilter) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := ac.logs.List(c.Request.Context(), filter, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

func (ac *ActivityLogController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entry, err := ac.logs.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, entry, "")
}
