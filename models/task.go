package models

import (
	"time"
)

type TaskType string

const (
	TaskTypeFOLLOW_UP TaskType = "FOLLOW_UP"
	TaskTypeDEMO      TaskType = "DEMO"
	TaskTypePROPOSAL  TaskType = "PROPOSAL"
	TaskTypeCONTRACT  TaskType = "CONTRACT"
	TaskTypeSUPPORT   TaskType = "SUPPORT"
	TaskTypeMEETING   TaskType = "MEETING"
)

type TaskPriority string

const (
	TaskPriorityLOW    TaskPriority = "LOW"
	TaskPriorityMEDIUM TaskPriority = "MEDIUM"
	TaskPriorityHIGH   TaskPriority = "HIGH"
	TaskPriorityURGENT TaskPriority = "URGENT"
)

type TaskStatus string

const (
	TaskStatusPENDING     TaskStatus = "PENDING"
	TaskStatusIN_PROGRESS TaskStatus = "IN_PROGRESS"
	TaskStatusCOMPLETED   TaskStatus = "COMPLETED"
	TaskStatusCANCELLED   TaskStatus = "CANCELLED"
)

type Task struct {
	ID             string       `bson:"_id" json:"id"`
	Title          string       `bson:"title" json:"title"`
	Description    string       `bson:"description,omitempty" json:"description,omitempty"`
	Type           TaskType     `bson:"type" json:"type"`
	Priority       TaskPriority `bson:"priority" json:"priority"`
	Status         TaskStatus   `bson:"status" json:"status"`
	DueDate        *time.Time   `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CompletedAt    *time.Time   `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CustomerID     string       `bson:"customerId,omitempty" json:"customerId,omitempty"`
	DealID         string       `bson:"dealId,omitempty" json:"dealId,omitempty"`
	AssignedUserID string       `bson:"assignedUserId,omitempty" json:"assignedUserId,omitempty"`
	Timestamps     `bson:",inline"`
}

// IsOverdue reports whether the task is past due and still open.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now) && t.Status != TaskStatusCOMPLETED && t.Status != TaskStatusCANCELLED
}

type (
	CreateTaskRequest struct {
		Title          string       `json:"title" binding:"required,min=1,max=200"`
		Description    string       `json:"description" binding:"max=1000"`
		Type           TaskType     `json:"type" binding:"required,oneof=FOLLOW_UP DEMO PROPOSAL CONTRACT SUPPORT MEETING"`
		Priority       TaskPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
		Status         TaskStatus   `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
		DueDate        *time.Time   `json:"dueDate"`
		CustomerID     string       `json:"customerId" binding:"omitempty,uuid"`
		DealID         string       `json:"dealId" binding:"omitempty,uuid"`
		AssignedUserID string       `json:"assignedUserId" binding:"omitempty,uuid"`
	}

	UpdateTaskRequest struct {
		Title          *string       `json:"title" binding:"omitempty,min=1,max=200"`
		Description    *string       `json:"description" binding:"omitempty,max=1000"`
		Type           *TaskType     `json:"type" binding:"omitempty,oneof=FOLLOW_UP DEMO PROPOSAL CONTRACT SUPPORT MEETING"`
		Priority       *TaskPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
		Status         *TaskStatus   `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
		DueDate        *time.Time    `json:"dueDate"`
		CustomerID     *string       `json:"customerId" binding:"omitempty,uuid"`
		DealID         *string       `json:"dealId" binding:"omitempty,uuid"`
		AssignedUserID *string       `json:"assignedUserId" binding:"omitempty,uuid"`
	}

	TaskFilter struct {
		Search         string
		Status         TaskStatus
		Priority       TaskPriority
		Type           TaskType
		CustomerID     string
		DealID         string
		AssignedUserID string
		Due            DateRange
		OpenOnly       bool // excludes COMPLETED and CANCELLED
	}
)
