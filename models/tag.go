package models

import (
	"time"
)

const DefaultTagColor = "#6B7280"

type Tag struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Color     string    `bson:"color" json:"color"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// CustomerTag links a customer to a tag. (customerId, tagId) is unique.
type CustomerTag struct {
	ID         string    `bson:"_id" json:"id"`
	CustomerID string    `bson:"customerId" json:"customerId"`
	TagID      string    `bson:"tagId" json:"tagId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type (
	CreateTagRequest struct {
		Name  string `json:"name" binding:"required,min=1,max=50"`
		Color string `json:"color" binding:"omitempty,hexcolor"`
	}

	UpdateTagRequest struct {
		Name  *string `json:"name" binding:"omitempty,min=1,max=50"`
		Color *string `json:"color" binding:"omitempty,hexcolor"`
	}
)
