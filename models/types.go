package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the access level of a user.
type UserRole string

const (
	UserRoleADMIN         UserRole = "ADMIN"
	UserRoleSALES_MANAGER UserRole = "SALES_MANAGER"
	UserRoleSALES_REP     UserRole = "SALES_REP"
	UserRoleSUPPORT       UserRole = "SUPPORT"
	UserRoleMARKETING     UserRole = "MARKETING"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleADMIN, UserRoleSALES_MANAGER, UserRoleSALES_REP, UserRoleSUPPORT, UserRoleMARKETING:
		return true
	}
	return false
}

// NewID returns a random UUID used as the document _id.
func NewID() string {
	return uuid.NewString()
}

// IsID reports whether s is a UUID.
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Timestamps is embedded in every mutable entity.
type Timestamps struct {
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// DateRange bounds a time field; zero values are open ends.
type DateRange struct {
	From time.Time
	To   time.Time
}
