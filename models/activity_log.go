package models

import (
	"time"
)

// NoChanges is stored instead of an empty change set.
const NoChanges = "NO_CHANGES"

// FieldChange is the before and after value of one field.
type FieldChange struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

// ActivityLog is an append-only audit row. Changes holds either a
// map[string]FieldChange or the NoChanges marker.
type ActivityLog struct {
	ID        string      `bson:"_id" json:"id"`
	Action    string      `bson:"action" json:"action"`
	Entity    string      `bson:"entity" json:"entity"`
	EntityID  string      `bson:"entityId" json:"entityId"`
	Changes   interface{} `bson:"changes" json:"changes"`
	UserID    string      `bson:"userId,omitempty" json:"userId,omitempty"`
	IPAddress string      `bson:"ipAddress" json:"ipAddress"`
	UserAgent string      `bson:"userAgent" json:"userAgent"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
}

type ActivityLogFilter struct {
	Entity   string
	EntityID string
	UserID   string
}
