package models

import (
	"time"
)

type ApprovalStatus string

const (
	ApprovalStatusPENDING  ApprovalStatus = "PENDING"
	ApprovalStatusAPPROVED ApprovalStatus = "APPROVED"
	ApprovalStatusREJECTED ApprovalStatus = "REJECTED"
	ApprovalStatusRETURNED ApprovalStatus = "RETURNED"
)

type ApprovalAction string

const (
	ApprovalActionAPPROVE ApprovalAction = "APPROVE"
	ApprovalActionREJECT  ApprovalAction = "REJECT"
	ApprovalActionRETURN  ApprovalAction = "RETURN"
)

// ResultStatus is the status an action moves a pending request to.
func (a ApprovalAction) ResultStatus() (ApprovalStatus, bool) {
	switch a {
	case ApprovalActionAPPROVE:
		return ApprovalStatusAPPROVED, true
	case ApprovalActionREJECT:
		return ApprovalStatusREJECTED, true
	case ApprovalActionRETURN:
		return ApprovalStatusRETURNED, true
	}
	return "", false
}

type ApprovalStep struct {
	UserID  string         `bson:"userId" json:"userId"`
	Role    UserRole       `bson:"role" json:"role"`
	Action  ApprovalAction `bson:"action" json:"action"`
	Remarks string         `bson:"remarks,omitempty" json:"remarks,omitempty"`
	At      time.Time      `bson:"at" json:"at"`
}

// ApprovalRequest asks a manager to sign off on a change to some record,
// typically a deal discount or a customer reassignment.
type ApprovalRequest struct {
	ID          string         `bson:"_id" json:"id"`
	Entity      string         `bson:"entity" json:"entity"`
	EntityID    string         `bson:"entityId" json:"entityId"`
	Title       string         `bson:"title" json:"title"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Status      ApprovalStatus `bson:"status" json:"status"`
	RequestedBy string         `bson:"requestedBy" json:"requestedBy"`
	History     []ApprovalStep `bson:"history" json:"history"`
	Timestamps  `bson:",inline"`
}

type (
	CreateApprovalRequest struct {
		Entity      string `json:"entity" binding:"required,oneof=customer deal task interaction contact"`
		EntityID    string `json:"entityId" binding:"required,uuid"`
		Title       string `json:"title" binding:"required,min=1,max=200"`
		Description string `json:"description" binding:"max=1000"`
	}

	ProcessApprovalRequest struct {
		ApprovalRequestID string         `json:"approvalRequestId" binding:"required,uuid"`
		Action            ApprovalAction `json:"action" binding:"required,oneof=APPROVE REJECT RETURN"`
		Remarks           string         `json:"remarks" binding:"max=1000"`
	}

	ApprovalFilter struct {
		Status      ApprovalStatus
		Entity      string
		RequestedBy string
	}
)
