package models

import (
	"time"
)

// CustomerStatus is where a customer sits in the funnel.
type CustomerStatus string

const (
	CustomerStatusLEAD     CustomerStatus = "LEAD"
	CustomerStatusPROSPECT CustomerStatus = "PROSPECT"
	CustomerStatusCUSTOMER CustomerStatus = "CUSTOMER"
	CustomerStatusINACTIVE CustomerStatus = "INACTIVE"
)

var CustomerStatuses = []CustomerStatus{
	CustomerStatusLEAD, CustomerStatusPROSPECT, CustomerStatusCUSTOMER, CustomerStatusINACTIVE,
}

func (s CustomerStatus) IsValid() bool {
	for _, v := range CustomerStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type CustomFieldType string

const (
	CustomFieldText        CustomFieldType = "text"
	CustomFieldNumber      CustomFieldType = "number"
	CustomFieldDate        CustomFieldType = "date"
	CustomFieldBoolean     CustomFieldType = "boolean"
	CustomFieldSelect      CustomFieldType = "select"
	CustomFieldMultiselect CustomFieldType = "multiselect"
)

type CustomField struct {
	Name    string          `bson:"name" json:"name" binding:"required,min=1,max=100"`
	Type    CustomFieldType `bson:"type" json:"type" binding:"required,oneof=text number date boolean select multiselect"`
	Value   interface{}     `bson:"value" json:"value"`
	Options []string        `bson:"options,omitempty" json:"options,omitempty"`
}

// Customer is a person or company the sales team works with.
type Customer struct {
	ID             string         `bson:"_id" json:"id"`
	FirstName      string         `bson:"firstName" json:"firstName"`
	LastName       string         `bson:"lastName" json:"lastName"`
	Email          string         `bson:"email" json:"email"`
	Phone          string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Company        string         `bson:"company,omitempty" json:"company,omitempty"`
	JobTitle       string         `bson:"jobTitle,omitempty" json:"jobTitle,omitempty"`
	Status         CustomerStatus `bson:"status" json:"status"`
	Score          int            `bson:"score" json:"score"`
	LifetimeValue  float64        `bson:"lifetimeValue" json:"lifetimeValue"`
	AssignedUserID string         `bson:"assignedUserId,omitempty" json:"assignedUserId,omitempty"`
	CustomFields   []CustomField  `bson:"customFields,omitempty" json:"customFields,omitempty"`
	IsActive       bool           `bson:"isActive" json:"isActive"`
	Timestamps     `bson:",inline"`
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// RelationCounts mirrors the _count block returned with customer lists.
type RelationCounts struct {
	Deals        int64 `json:"deals"`
	Interactions int64 `json:"interactions"`
	Tasks        int64 `json:"tasks"`
	Notes        int64 `json:"notes"`
}

// CustomerView is a customer with its related records attached.
type CustomerView struct {
	Customer
	Tags         []Tag           `json:"tags"`
	Count        *RelationCounts `json:"_count,omitempty"`
	Contacts     []Contact       `json:"contacts,omitempty"`
	Deals        []Deal          `json:"deals,omitempty"`
	Tasks        []Task          `json:"tasks,omitempty"`
	Interactions []Interaction   `json:"interactions,omitempty"`
	AssignedUser *User           `json:"assignedUser,omitempty"`
}

type (
	CreateCustomerRequest struct {
		FirstName      string         `json:"firstName" binding:"required,min=1,max=50"`
		LastName       string         `json:"lastName" binding:"required,min=1,max=50"`
		Email          string         `json:"email" binding:"required,email,max=255"`
		Phone          string         `json:"phone" binding:"max=20"`
		Company        string         `json:"company" binding:"max=100"`
		JobTitle       string         `json:"jobTitle" binding:"max=100"`
		Status         CustomerStatus `json:"status" binding:"omitempty,oneof=LEAD PROSPECT CUSTOMER INACTIVE"`
		Score          *int           `json:"score" binding:"omitempty,min=0,max=100"`
		LifetimeValue  *float64       `json:"lifetimeValue" binding:"omitempty,min=0"`
		AssignedUserID string         `json:"assignedUserId" binding:"omitempty,uuid"`
		Tags           []string       `json:"tags" binding:"omitempty,dive,min=1,max=50"`
		CustomFields   []CustomField  `json:"customFields" binding:"omitempty,dive"`
	}

	UpdateCustomerRequest struct {
		FirstName      *string         `json:"firstName" binding:"omitempty,min=1,max=50"`
		LastName       *string         `json:"lastName" binding:"omitempty,min=1,max=50"`
		Email          *string         `json:"email" binding:"omitempty,email,max=255"`
		Phone          *string         `json:"phone" binding:"omitempty,max=20"`
		Company        *string         `json:"company" binding:"omitempty,max=100"`
		JobTitle       *string         `json:"jobTitle" binding:"omitempty,max=100"`
		Status         *CustomerStatus `json:"status" binding:"omitempty,oneof=LEAD PROSPECT CUSTOMER INACTIVE"`
		Score          *int            `json:"score" binding:"omitempty,min=0,max=100"`
		LifetimeValue  *float64        `json:"lifetimeValue" binding:"omitempty,min=0"`
		AssignedUserID *string         `json:"assignedUserId" binding:"omitempty,uuid"`
		Tags           *[]string       `json:"tags" binding:"omitempty,dive,min=1,max=50"`
	}

	CustomerFilter struct {
		Search         string
		Status         CustomerStatus
		AssignedUserID string
		TagIDs         []string
		MinScore       *int
		MaxScore       *int
		CreatedAfter   time.Time
		MinLifetime    *float64
		IncludeAll     bool // include soft deleted rows
	}

	SegmentRequest struct {
		IncludeHighValue   bool     `json:"includeHighValue"`
		HighValueThreshold *float64 `json:"highValueThreshold" binding:"omitempty,min=0"`
		IncludeRecent      bool     `json:"includeRecent"`
		RecentDays         *int     `json:"recentDays" binding:"omitempty,min=1,max=3650"`
		SegmentByStatus    bool     `json:"segmentByStatus"`
	}

	CustomerStats struct {
		LifetimeValue      float64          `json:"lifetimeValue"`
		CustomerSince      time.Time        `json:"customerSince"`
		TotalDeals         int64            `json:"totalDeals"`
		TotalDealValue     float64          `json:"totalDealValue"`
		InteractionsByType map[string]int64 `json:"interactionsByType"`
		TasksByStatus      map[string]int64 `json:"tasksByStatus"`
	}

	// StatusSummary is one row of the customer overview.
	StatusSummary struct {
		Status             CustomerStatus `bson:"_id" json:"status"`
		Count              int64          `bson:"count" json:"count"`
		AverageScore       float64        `bson:"averageScore" json:"averageScore"`
		TotalLifetimeValue float64        `bson:"totalLifetimeValue" json:"totalLifetimeValue"`
	}

	// TimelineEntry is one item of the merged customer history.
	TimelineEntry struct {
		Type      string      `json:"type"`
		ID        string      `json:"id"`
		CreatedAt time.Time   `json:"createdAt"`
		Data      interface{} `json:"data"`
	}

	// CustomerSegment is one group returned by the segmentation endpoint.
	CustomerSegment struct {
		Name      string         `json:"name"`
		Criteria  string         `json:"criteria"`
		Customers []CustomerView `json:"customers"`
		Count     int64          `json:"count"`
	}

	ImportError struct {
		Row   int    `json:"row"`
		Email string `json:"email,omitempty"`
		Error string `json:"error"`
	}

	ImportResult struct {
		Total      int           `json:"total"`
		Successful int           `json:"successful"`
		Failed     int           `json:"failed"`
		Errors     []ImportError `json:"errors"`
	}
)
