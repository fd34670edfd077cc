package controllers

import (
	"net/http"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	contacts *service.ContactService
}

func NewContactController(contacts *service.ContactService) *ContactController {
	return &ContactController{contacts: contacts}
}

func (cc *ContactController) Create(c *gin.Context) {
	var req models.CreateContactRequest
	if !bindJSON(c, &req) {
		return
	}
	contact, err := cc.contacts.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, contact, "Contact created successfully", http.StatusCreated)
}

type contactQuery struct {
	CustomerID string             `form:"customerId" binding:"omitempty,uuid"`
	Type       models.ContactType `form:"type" binding:"omitempty,oneof=email phone mobile fax website"`
}

func (cc *ContactController) List(c *gin.Context) {
	var q contactQuery
	if !bindQuery(c, &q) {
		return
	}
	cc.list(c, models.ContactFilter{CustomerID: q.CustomerID, Type: q.Type})
}

func (cc *ContactController) ByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	cc.list(c, models.ContactFilter{CustomerID: customerID})
}

func (cc *ContactController) ByType(c *gin.Context) {
	contactType := models.ContactType(c.Param("type"))
	if !contactType.IsValid() {
		utils.HandleError(c, utils.CreateBadRequestError("Invalid contact type"))
		return
	}
	cc.list(c, models.ContactFilter{Type: contactType})
}

// Search matches q against contact values and labels.
func (cc *ContactController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.HandleError(c, utils.CreateBadRequestError("Query parameter q is required"))
		return
	}
	cc.list(c, models.ContactFilter{Search: q})
}

func (cc *ContactController) list(c *gin.Context, filter models.ContactFilter) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := cc.contacts.List(c.Request.Context(), filter, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

func (cc *ContactController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	contact, err := cc.contacts.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, contact, "")
}

func (cc *ContactController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateContactRequest
	if !bindJSON(c, &req) {
		return
	}
	contact, err := cc.contacts.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, contact, "Contact updated successfully")
}

func (cc *ContactController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := cc.contacts.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"id": id}, "Contact deleted successfully")
}
