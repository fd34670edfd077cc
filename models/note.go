package models

import (
	"fmt"
)

// OwnerType names the kind of record a note is attached to.
type OwnerType string

const (
	OwnerContact     OwnerType = "contact"
	OwnerDeal        OwnerType = "deal"
	OwnerTask        OwnerType = "task"
	OwnerInteraction OwnerType = "interaction"
)

var OwnerTypes = []OwnerType{OwnerContact, OwnerDeal, OwnerTask, OwnerInteraction}

// ParseOwnerType accepts the singular or plural route form ("deal", "deals").
func ParseOwnerType(s string) (OwnerType, error) {
	switch s {
	case "contact", "contacts":
		return OwnerContact, nil
	case "deal", "deals":
		return OwnerDeal, nil
	case "task", "tasks":
		return OwnerTask, nil
	case "interaction", "interactions":
		return OwnerInteraction, nil
	}
	return "", fmt.Errorf("unknown note owner type %q", s)
}

// NoteOwner is the record a note belongs to. Exactly one owner per note.
type NoteOwner struct {
	Type OwnerType `bson:"ownerType" json:"ownerType" binding:"required,oneof=contact deal task interaction"`
	ID   string    `bson:"ownerId" json:"ownerId" binding:"required,uuid"`
}

func (o NoteOwner) Validate() error {
	if _, err := ParseOwnerType(string(o.Type)); err != nil {
		return err
	}
	if !IsID(o.ID) {
		return fmt.Errorf("invalid note owner id %q", o.ID)
	}
	return nil
}

type Note struct {
	ID         string    `bson:"_id" json:"id"`
	Title      string    `bson:"title" json:"title"`
	Content    string    `bson:"content" json:"content"`
	IsPrivate  bool      `bson:"isPrivate" json:"isPrivate"`
	Tags       []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Owner      NoteOwner `bson:"owner" json:"owner"`
	CustomerID string    `bson:"customerId,omitempty" json:"customerId,omitempty"` // customer of the owner, if any
	AuthorID   string    `bson:"authorId,omitempty" json:"authorId,omitempty"`
	Timestamps `bson:",inline"`
}

type (
	CreateNoteRequest struct {
		Title     string    `json:"title" binding:"required,min=1,max=200"`
		Content   string    `json:"content" binding:"required,min=1,max=5000"`
		IsPrivate bool      `json:"isPrivate"`
		Tags      []string  `json:"tags" binding:"omitempty,dive,min=1,max=50"`
		Owner     NoteOwner `json:"owner" binding:"required"`
	}

	UpdateNoteRequest struct {
		Title     *string   `json:"title" binding:"omitempty,min=1,max=200"`
		Content   *string   `json:"content" binding:"omitempty,min=1,max=5000"`
		IsPrivate *bool     `json:"isPrivate"`
		Tags      *[]string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
	}

	NoteFilter struct {
		Search     string
		Owner      *NoteOwner
		OwnerIDs   []string
		CustomerID string
		AuthorID   string
	}
)
