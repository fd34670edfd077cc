package controllers

import (
	"net/http"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

type InteractionController struct {
	interactions *service.InteractionService
}

func NewInteractionController(interactions *service.InteractionService) *InteractionController {
	return &InteractionController{interactions: interactions}
}

func (ic *InteractionController) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateInteractionRequest
	if !bindJSON(c, &req) {
		return
	}
	interaction, err := ic.interactions.Create(c.Request.Context(), req, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, interaction, "Interaction created successfully", http.StatusCreated)
}

type interactionQuery struct {
	Type       models.InteractionType `form:"type" binding:"omitempty,oneof=EMAIL CALL MEETING SMS SOCIAL WEBSITE"`
	Direction  models.Direction       `form:"direction" binding:"omitempty,oneof=INBOUND OUTBOUND"`
	CustomerID string                 `form:"customerId" binding:"omitempty,uuid"`
	DealID     string                 `form:"dealId" binding:"omitempty,uuid"`
	Completed  *bool                  `form:"completed"`
}

func (ic *InteractionController) List(c *gin.Context) {
	var q interactionQuery
	if !bindQuery(c, &q) {
		return
	}
	ic.list(c, models.InteractionFilter{
		Type:       q.Type,
		Direction:  q.Direction,
		CustomerID: q.CustomerID,
		DealID:     q.DealID,
		Completed:  q.Completed,
	})
}

func (ic *InteractionController) ByDeal(c *gin.Context) {
	dealID, ok := pathID(c, "dealId")
	if !ok {
		return
	}
	ic.list(c, models.InteractionFilter{DealID: dealID})
}

func (ic *InteractionController) ByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	ic.list(c, models.InteractionFilter{CustomerID: customerID})
}

func (ic *InteractionController) list(c *gin.Context, filter models.InteractionFilter) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := ic.interactions.List(c.Request.Context(), filter, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

func (ic *InteractionController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	interaction, err := ic.interactions.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, interaction, "")
}

func (ic *InteractionController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateInteractionRequest
	if !bindJSON(c, &req) {
		return
	}
	interaction, err := ic.interactions.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, interaction, "Interaction updated successfully")
}

func (ic *InteractionController) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	interaction, err := ic.interactions.Complete(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, interaction, "Interaction marked as completed")
}

func (ic *InteractionController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ic.interactions.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"id": id}, "Interaction deleted successfully")
}
