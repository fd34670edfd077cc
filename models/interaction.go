package models

import (
	"time"
)

type InteractionType string

const (
	InteractionTypeEMAIL   InteractionType = "EMAIL"
	InteractionTypeCALL    InteractionType = "CALL"
	InteractionTypeMEETING InteractionType = "MEETING"
	InteractionTypeSMS     InteractionType = "SMS"
	InteractionTypeSOCIAL  InteractionType = "SOCIAL"
	InteractionTypeWEBSITE InteractionType = "WEBSITE"
)

type Direction string

const (
	DirectionINBOUND  Direction = "INBOUND"
	DirectionOUTBOUND Direction = "OUTBOUND"
)

// Interaction is a logged touchpoint with a customer.
type Interaction struct {
	ID          string          `bson:"_id" json:"id"`
	Type        InteractionType `bson:"type" json:"type"`
	Direction   Direction       `bson:"direction" json:"direction"`
	Subject     string          `bson:"subject,omitempty" json:"subject,omitempty"`
	Content     string          `bson:"content,omitempty" json:"content,omitempty"`
	Completed   bool            `bson:"completed" json:"completed"`
	ScheduledAt *time.Time      `bson:"scheduledAt,omitempty" json:"scheduledAt,omitempty"`
	CompletedAt *time.Time      `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CustomerID  string          `bson:"customerId" json:"customerId"`
	DealID      string          `bson:"dealId,omitempty" json:"dealId,omitempty"`
	UserID      string          `bson:"userId,omitempty" json:"userId,omitempty"`
	Timestamps  `bson:",inline"`
}

type (
	CreateInteractionRequest struct {
		Type        InteractionType `json:"type" binding:"required,oneof=EMAIL CALL MEETING SMS SOCIAL WEBSITE"`
		Direction   Direction       `json:"direction" binding:"required,oneof=INBOUND OUTBOUND"`
		Subject     string          `json:"subject" binding:"max=200"`
		Content     string          `json:"content" binding:"max=5000"`
		Completed   bool            `json:"completed"`
		ScheduledAt *time.Time      `json:"scheduledAt"`
		CustomerID  string          `json:"customerId" binding:"required,uuid"`
		DealID      string          `json:"dealId" binding:"omitempty,uuid"`
	}

	UpdateInteractionRequest struct {
		Type        *InteractionType `json:"type" binding:"omitempty,oneof=EMAIL CALL MEETING SMS SOCIAL WEBSITE"`
		Direction   *Direction       `json:"direction" binding:"omitempty,oneof=INBOUND OUTBOUND"`
		Subject     *string          `json:"subject" binding:"omitempty,max=200"`
		Content     *string          `json:"content" binding:"omitempty,max=5000"`
		Completed   *bool            `json:"completed"`
		ScheduledAt *time.Time       `json:"scheduledAt"`
		DealID      *string          `json:"dealId" binding:"omitempty,uuid"`
	}

	InteractionFilter struct {
		Search     string
		Type       InteractionType
		Direction  Direction
		CustomerID string
		DealID     string
		Completed  *bool
	}
)
