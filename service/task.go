package service

import (
	"context"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
)

type TaskService struct {
	tasks     TaskStore
	customers CustomerStore
	deals     DealStore
}

func NewTaskService(tasks TaskStore, customers CustomerStore, deals DealStore) *TaskService {
	return &TaskService{tasks: tasks, customers: customers, deals: deals}
}

func (s *TaskService) Create(ctx context.Context, req models.CreateTaskRequest, callerID string) (*models.Task, error) {
	if err := s.checkRelations(ctx, req.CustomerID, req.DealID); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:             models.NewID(),
		Title:          req.Title,
		Description:    req.Description,
		Type:           req.Type,
		Priority:       req.Priority,
		Status:         req.Status,
		DueDate:        req.DueDate,
		CustomerID:     req.CustomerID,
		DealID:         req.DealID,
		AssignedUserID: req.AssignedUserID,
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMEDIUM
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPENDING
	}
	if task.AssignedUserID == "" {
		task.AssignedUserID = callerID
	}
	task.Touch(now())
	stampCompletion(task)

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, f models.TaskFilter, page utils.PageParams) (utils.Paginated[models.Task], error) {
	f.Search = page.Search
	tasks, total, err := s.tasks.List(ctx, f, page)
	if err != nil {
		return utils.Paginated[models.Task]{}, err
	}
	return utils.NewPaginated(tasks, total, page.Page, page.Limit), nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Task")
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Task")
	}

	customerID, dealID := "", ""
	if req.CustomerID != nil {
		customerID = *req.CustomerID
	}
	if req.DealID != nil {
		dealID = *req.DealID
	}
	if err := s.checkRelations(ctx, customerID, dealID); err != nil {
		return nil, err
	}

	setIf(&task.Title, req.Title)
	setIf(&task.Description, req.Description)
	setIf(&task.Type, req.Type)
	setIf(&task.Priority, req.Priority)
	setIf(&task.Status, req.Status)
	setIf(&task.CustomerID, req.CustomerID)
	setIf(&task.DealID, req.DealID)
	setIf(&task.AssignedUserID, req.AssignedUserID)
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.Touch(now())
	stampCompletion(task)

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, notFound(err, "Task")
	}
	return task, nil
}

// Complete marks the task done and records when.
func (s *TaskService) Complete(ctx context.Context, id string) (*models.Task, error) {
	status := models.TaskStatusCOMPLETED
	return s.Update(ctx, id, models.UpdateTaskRequest{Status: &status})
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return notFound(s.tasks.Delete(ctx, id), "Task")
}

// Overdue lists open tasks whose due date has passed.
func (s *TaskService) Overdue(ctx context.Context, assignedUserID string, page utils.PageParams) (utils.Paginated[models.Task], error) {
	return s.List(ctx, models.TaskFilter{
		AssignedUserID: assignedUserID,
		OpenOnly:       true,
		Due:            models.DateRange{To: now()},
	}, page)
}

// Today lists open tasks due on the current calendar day.
func (s *TaskService) Today(ctx context.Context, assignedUserID string, page utils.PageParams) (utils.Paginated[models.Task], error) {
	start, end := dayBounds(now())
	return s.List(ctx, models.TaskFilter{
		AssignedUserID: assignedUserID,
		OpenOnly:       true,
		Due:            models.DateRange{From: start, To: end},
	}, page)
}

// AllOverdue returns every overdue open task, for the daily digest.
func (s *TaskService) AllOverdue(ctx context.Context) ([]models.Task, error) {
	return s.tasks.FindAll(ctx, models.TaskFilter{OpenOnly: true, Due: models.DateRange{To: now()}})
}

func (s *TaskService) checkRelations(ctx context.Context, customerID, dealID string) error {
	if customerID != "" {
		if _, err := s.customers.FindByID(ctx, customerID); err != nil {
			return notFound(err, "Customer")
		}
	}
	if dealID != "" {
		if _, err := s.deals.FindByID(ctx, dealID); err != nil {
			return notFound(err, "Deal")
		}
	}
	return nil
}

func stampCompletion(task *models.Task) {
	switch {
	case task.Status == models.TaskStatusCOMPLETED && task.CompletedAt == nil:
		t := now()
		task.CompletedAt = &t
	case task.Status != models.TaskStatusCOMPLETED:
		task.CompletedAt = nil
	}
}

// dayBounds returns [midnight, next midnight) of the day containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
