package controllers

import (
	"net/http"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

type ApprovalController struct {
	approvals *service.ApprovalService
}

func NewApprovalController(approvals *service.ApprovalService) *ApprovalController {
	return &ApprovalController{approvals: approvals}
}

func (ac *ApprovalController) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateApprovalRequest
	if !bindJSON(c, &req) {
		return
	}
	approval, err := ac.approvals.Create(c.Request.Context(), req, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, approval, "Approval request submitted", http.StatusCreated)
}

type approvalQuery struct {
	Status models.ApprovalStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED RETURNED"`
	Entity string                `form:"entity" binding:"omitempty,oneof=customer deal task interaction contact"`
}

func (ac *ApprovalController) List(c *gin.Context) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	var q approvalQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := ac.approvals.List(c.Request.Context(), models.ApprovalFilter{Status: q.Status, Entity: q.Entity}, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

func (ac *ApprovalController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	approval, err := ac.approvals.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, approval, "")
}

// Process approves, rejects or returns a pending request.
func (ac *ApprovalController) Process(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ProcessApprovalRequest
	if !bindJSON(c, &req) {
		return
	}
	approval, err := ac.approvals.Process(c.Request.Context(), req, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, approval, "Approval request processed")
}

func (ac *ApprovalController) Resubmit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	approval, err := ac.approvals.Resubmit(c.Request.Context(), id, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, approval, "Approval request resubmitted")
}
