package controllers

import (
	"net/http"
	"strconv"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

const maxImportSize = 10 << 20

type CustomerController struct {
	customers *service.CustomerService
}

func NewCustomerController(customers *service.CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

func (cc *CustomerController) Create(c *gin.Context) {
	var req models.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	customer, err := cc.customers.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, customer, "Customer created successfully", http.StatusCreated)
}

type customerQuery struct {
	Status         models.CustomerStatus `form:"status" binding:"omitempty,oneof=LEAD PROSPECT CUSTOMER INACTIVE"`
	AssignedUserID string                `form:"assignedUserId" binding:"omitempty,uuid"`
	Tags           string                `form:"tags"`
	MinScore       *int                  `form:"minScore" binding:"omitempty,min=0,max=100"`
	MaxScore       *int                  `form:"maxScore" binding:"omitempty,min=0,max=100"`
}

func (q customerQuery) filter() (models.CustomerFilter, error) {
	tags := splitList(q.Tags)
	for _, id := range tags {
		if !models.IsID(id) {
			return models.CustomerFilter{}, utils.CreateBadRequestError("Invalid tag id " + strconv.Quote(id))
		}
	}
	if q.MinScore != nil && q.MaxScore != nil && *q.MinScore > *q.MaxScore {
		return models.CustomerFilter{}, utils.CreateBadRequestError("minScore must not exceed maxScore")
	}
	return models.CustomerFilter{
		Status:         q.Status,
		AssignedUserID: q.AssignedUserID,
		TagIDs:         tags,
		MinScore:       q.MinScore,
		MaxScore:       q.MaxScore,
	}, nil
}

func (cc *CustomerController) List(c *gin.Context) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	var q customerQuery
	if !bindQuery(c, &q) {
		return
	}
	filter, err := q.filter()
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	result, err := cc.customers.List(c.Request.Context(), filter, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

func (cc *CustomerController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	includeRelations, _ := strconv.ParseBool(c.Query("includeRelations"))

	customer, err := cc.customers.Get(c.Request.Context(), id, includeRelations)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, customer, "")
}

func (cc *CustomerController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	customer, err := cc.customers.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, customer, "Customer updated successfully")
}

// Delete deactivates the customer. The row stays for history.
func (cc *CustomerController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := cc.customers.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"id": id}, "Customer deleted successfully")
}

func (cc *CustomerController) AddContactMethod(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.AddContactMethodRequest
	if !bindJSON(c, &req) {
		return
	}
	contact, err := cc.customers.AddContactMethod(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, contact, "Contact method added", http.StatusCreated)
}

func (cc *CustomerController) AddCustomField(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var field models.CustomField
	if !bindJSON(c, &field) {
		return
	}
	saved, err := cc.customers.AddCustomField(c.Request.Context(), id, field)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, saved, "Custom field saved")
}

func (cc *CustomerController) Timeline(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := cc.customers.Timeline(c.Request.Context(), id, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

func (cc *CustomerController) Stats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stats, err := cc.customers.Stats(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, stats, "")
}

func (cc *CustomerController) Overview(c *gin.Context) {
	overview, err := cc.customers.Overview(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, overview, "")
}

func (cc *CustomerController) Segments(c *gin.Context) {
	var req models.SegmentRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	segments, err := cc.customers.Segments(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, segments, "")
}

type exportQuery struct {
	Status         models.CustomerStatus `form:"status" binding:"omitempty,oneof=LEAD PROSPECT CUSTOMER INACTIVE"`
	AssignedUserID string                `form:"assignedUserId" binding:"omitempty,uuid"`
}

// Export streams the matching customers as a CSV or Excel attachment.
func (cc *CustomerController) Export(c *gin.Context) {
	var q exportQuery
	if !bindQuery(c, &q) {
		return
	}
	file, err := cc.customers.Export(c.Request.Context(), c.Param("format"), models.CustomerFilter{
		Status:         q.Status,
		AssignedUserID: q.AssignedUserID,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Import reads a CSV or XLSX upload from the multipart field "file".
func (cc *CustomerController) Import(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	header, err := c.FormFile("file")
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("A CSV or Excel file is required in field \"file\""))
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer file.Close()

	result, err := cc.customers.Import(c.Request.Context(), header.Filename, file, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.LogInfo(map[string]interface{}{
		"file":       header.Filename,
		"total":      result.Total,
		"successful": result.Successful,
		"failed":     result.Failed,
	}, "customer import finished")
	utils.SuccessResponse(c, result, "Import completed")
}

func (cc *CustomerController) Tags(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tags, err := cc.customers.Tags(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, tags, "")
}

// AddTag links a tag to a customer. Repeating the call is harmless.
func (cc *CustomerController) AddTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}
	link, err := cc.customers.AddTag(c.Request.Context(), id, tagID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, link, "Tag added to customer")
}

func (cc *CustomerController) RemoveTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}
	if err := cc.customers.RemoveTag(c.Request.Context(), id, tagID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "Tag removed from customer")
}

func (cc *CustomerController) CustomersWithTag(c *gin.Context) {
	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}
	page, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := cc.customers.CustomersWithTag(c.Request.Context(), tagID, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}
