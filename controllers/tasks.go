package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	tasks *service.TaskService
}

func NewTaskController(tasks *service.TaskService) *TaskController {
	return &TaskController{tasks: tasks}
}

func (tc *TaskController) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := tc.tasks.Create(c.Request.Context(), req, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, task, "Task created successfully", http.StatusCreated)
}

type taskQuery struct {
	Status         models.TaskStatus   `form:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Priority       models.TaskPriority `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Type           models.TaskType     `form:"type" binding:"omitempty,oneof=FOLLOW_UP DEMO PROPOSAL CONTRACT SUPPORT MEETING"`
	CustomerID     string              `form:"customerId" binding:"omitempty,uuid"`
	DealID         string              `form:"dealId" binding:"omitempty,uuid"`
	AssignedUserID string              `form:"assignedUserId" binding:"omitempty,uuid"`
	DueDate        string              `form:"dueDate" binding:"omitempty,datetime=2006-01-02"`
}

func (q taskQuery) filter() models.TaskFilter {
	f := models.TaskFilter{
		Status:         q.Status,
		Priority:       q.Priority,
		Type:           q.Type,
		CustomerID:     q.CustomerID,
		DealID:         q.DealID,
		AssignedUserID: q.AssignedUserID,
	}
	if day, err := time.Parse("2006-01-02", q.DueDate); err == nil {
		f.Due = models.DateRange{From: day, To: day.AddDate(0, 0, 1)}
	}
	return f
}

// List returns tasks ordered by due date. dueDate selects one calendar day (UTC).
func (tc *TaskController) List(c *gin.Context) {
	var q taskQuery
	if !bindQuery(c, &q) {
		return
	}
	tc.list(c, q.filter())
}

func (tc *TaskController) ByDeal(c *gin.Context) {
	dealID, ok := pathID(c, "dealId")
	if !ok {
		return
	}
	tc.list(c, models.TaskFilter{DealID: dealID})
}

func (tc *TaskController) ByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	tc.list(c, models.TaskFilter{CustomerID: customerID})
}

func (tc *TaskController) list(c *gin.Context, filter models.TaskFilter) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := tc.tasks.List(c.Request.Context(), filter, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

type assigneeQuery struct {
	AssignedUserID string `form:"assignedUserId" binding:"omitempty,uuid"`
}

func (tc *TaskController) Overdue(c *gin.Context) {
	tc.dueList(c, tc.tasks.Overdue)
}

func (tc *TaskController) Today(c *gin.Context) {
	tc.dueList(c, tc.tasks.Today)
}

type dueLister func(ctx context.Context, assignedUserID string, page utils.PageParams) (utils.Paginated[models.Task], error)

func (tc *TaskController) dueList(c *gin.Context, list dueLister) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	var q assigneeQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := list(c.Request.Context(), q.AssignedUserID, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

func (tc *TaskController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := tc.tasks.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, task, "")
}

func (tc *TaskController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := tc.tasks.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, task, "Task updated successfully")
}

func (tc *TaskController) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := tc.tasks.Complete(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, task, "Task completed")
}

func (tc *TaskController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := tc.tasks.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"id": id}, "Task deleted successfully")
}
