package controllers

import (
	"net/http"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

type DealController struct {
	deals *service.DealService
}

func NewDealController(deals *service.DealService) *DealController {
	return &DealController{deals: deals}
}

func (dc *DealController) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateDealRequest
	if !bindJSON(c, &req) {
		return
	}
	deal, err := dc.deals.Create(c.Request.Context(), req, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, deal, "Deal created successfully", http.StatusCreated)
}

type dealQuery struct {
	Stage          models.DealStage `form:"stage" binding:"omitempty,oneof=PROSPECTING QUALIFICATION PROPOSAL NEGOTIATION CLOSED_WON CLOSED_LOST"`
	CustomerID     string           `form:"customerId" binding:"omitempty,uuid"`
	AssignedUserID string           `form:"assignedUserId" binding:"omitempty,uuid"`
}

func (q dealQuery) filter() models.DealFilter {
	return models.DealFilter{Stage: q.Stage, CustomerID: q.CustomerID, AssignedUserID: q.AssignedUserID}
}

func (dc *DealController) List(c *gin.Context) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	var q dealQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := dc.deals.List(c.Request.Context(), q.filter(), page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

func (dc *DealController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deal, err := dc.deals.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, deal, "")
}

func (dc *DealController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateDealRequest
	if !bindJSON(c, &req) {
		return
	}
	deal, err := dc.deals.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, deal, "Deal updated successfully")
}

// UpdateStage moves a deal through the pipeline. Closing stages stamp the close date.
func (dc *DealController) UpdateStage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateDealStageRequest
	if !bindJSON(c, &req) {
		return
	}
	deal, err := dc.deals.UpdateStage(c.Request.Context(), id, req.Stage)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, deal, "Deal stage updated")
}

func (dc *DealController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := dc.deals.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"id": id}, "Deal deleted successfully")
}

func (dc *DealController) PipelineStats(c *gin.Context) {
	var q dealQuery
	if !bindQuery(c, &q) {
		return
	}
	stats, err := dc.deals.PipelineStats(c.Request.Context(), q.filter())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, stats, "")
}
