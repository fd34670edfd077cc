package models

import (
	"time"
)

// DealStage is a point in the sales pipeline. Any stage may move to any other; there are no transition rules.
type DealStage string

const (
	DealStagePROSPECTING   DealStage = "PROSPECTING"
	DealStageQUALIFICATION DealStage = "QUALIFICATION"
	DealStagePROPOSAL      DealStage = "PROPOSAL"
	DealStageNEGOTIATION   DealStage = "NEGOTIATION"
	DealStageCLOSED_WON    DealStage = "CLOSED_WON"
	DealStageCLOSED_LOST   DealStage = "CLOSED_LOST"
)

var DealStages = []DealStage{
	DealStagePROSPECTING, DealStageQUALIFICATION, DealStagePROPOSAL,
	DealStageNEGOTIATION, DealStageCLOSED_WON, DealStageCLOSED_LOST,
}

func (s DealStage) IsValid() bool {
	for _, v := range DealStages {
		if v == s {
			return true
		}
	}
	return false
}

func (s DealStage) IsClosed() bool {
	return s == DealStageCLOSED_WON || s == DealStageCLOSED_LOST
}

type Deal struct {
	ID                string     `bson:"_id" json:"id"`
	Title             string     `bson:"title" json:"title"`
	Description       string     `bson:"description,omitempty" json:"description,omitempty"`
	Value             float64    `bson:"value" json:"value"`
	Currency          string     `bson:"currency" json:"currency"`
	Stage             DealStage  `bson:"stage" json:"stage"`
	Probability       int        `bson:"probability" json:"probability"`
	ExpectedCloseDate *time.Time `bson:"expectedCloseDate,omitempty" json:"expectedCloseDate,omitempty"`
	ActualCloseDate   *time.Time `bson:"actualCloseDate,omitempty" json:"actualCloseDate,omitempty"`
	CustomerID        string     `bson:"customerId" json:"customerId"`
	AssignedUserID    string     `bson:"assignedUserId,omitempty" json:"assignedUserId,omitempty"`
	Timestamps        `bson:",inline"`
}

// DealView is a deal with its customer attached.
type DealView struct {
	Deal
	Customer *Customer `json:"customer,omitempty"`
}

type (
	CreateDealRequest struct {
		Title             string     `json:"title" binding:"required,min=1,max=200"`
		Description       string     `json:"description" binding:"max=1000"`
		Value             float64    `json:"value" binding:"min=0"`
		Currency          string     `json:"currency" binding:"omitempty,len=3,alpha"`
		Stage             DealStage  `json:"stage" binding:"omitempty,oneof=PROSPECTING QUALIFICATION PROPOSAL NEGOTIATION CLOSED_WON CLOSED_LOST"`
		Probability       *int       `json:"probability" binding:"omitempty,min=0,max=100"`
		ExpectedCloseDate *time.Time `json:"expectedCloseDate"`
		CustomerID        string     `json:"customerId" binding:"required,uuid"`
		AssignedUserID    string     `json:"assignedUserId" binding:"omitempty,uuid"`
	}

	UpdateDealRequest struct {
		Title             *string    `json:"title" binding:"omitempty,min=1,max=200"`
		Description       *string    `json:"description" binding:"omitempty,max=1000"`
		Value             *float64   `json:"value" binding:"omitempty,min=0"`
		Currency          *string    `json:"currency" binding:"omitempty,len=3,alpha"`
		Stage             *DealStage `json:"stage" binding:"omitempty,oneof=PROSPECTING QUALIFICATION PROPOSAL NEGOTIATION CLOSED_WON CLOSED_LOST"`
		Probability       *int       `json:"probability" binding:"omitempty,min=0,max=100"`
		ExpectedCloseDate *time.Time `json:"expectedCloseDate"`
		ActualCloseDate   *time.Time `json:"actualCloseDate"`
		AssignedUserID    *string    `json:"assignedUserId" binding:"omitempty,uuid"`
	}

	UpdateDealStageRequest struct {
		Stage DealStage `json:"stage" binding:"required,oneof=PROSPECTING QUALIFICATION PROPOSAL NEGOTIATION CLOSED_WON CLOSED_LOST"`
	}

	DealFilter struct {
		Search         string
		Stage          DealStage
		CustomerID     string
		AssignedUserID string
	}

	// StageBucket is the per-stage aggregate of the pipeline.
	StageBucket struct {
		Stage        DealStage `bson:"_id" json:"stage"`
		Count        int64     `bson:"count" json:"count"`
		TotalValue   float64   `bson:"totalValue" json:"totalValue"`
		AverageValue float64   `bson:"averageValue" json:"averageValue"`
	}

	PipelineOverview struct {
		TotalDeals int64   `json:"totalDeals"`
		TotalValue float64 `json:"totalValue"`
		WonDeals   int64   `json:"wonDeals"`
		LostDeals  int64   `json:"lostDeals"`
		WinRate    float64 `json:"winRate"`
	}

	PipelineStats struct {
		ByStage  []StageBucket    `json:"byStage"`
		Overview PipelineOverview `json:"overview"`
	}
)
