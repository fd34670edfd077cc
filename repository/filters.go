package repository

import (
	"github.com/BerniceZTT/crm_api/models"

	"go.mongodb.org/mongo-driver/bson"
)

// customerFilter builds the list query. taggedIDs is nil when no tag filter
// applies and the ids of customers carrying any requested tag otherwise.
func customerFilter(f models.CustomerFilter, taggedIDs []string) bson.M {
	filter := bson.M{}
	if !f.IncludeAll {
		filter["isActive"] = true
	}
	if f.Search != "" {
		filter["$or"] = searchAny(f.Search, "firstName", "lastName", "email", "company")
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.AssignedUserID != "" {
		filter["assignedUserId"] = f.AssignedUserID
	}
	if taggedIDs != nil {
		filter["_id"] = bson.M{"$in": taggedIDs}
	}

	score := bson.M{}
	if f.MinScore != nil {
		score["$gte"] = *f.MinScore
	}
	if f.MaxScore != nil {
		score["$lte"] = *f.MaxScore
	}
	if len(score) > 0 {
		filter["score"] = score
	}

	if f.MinLifetime != nil {
		filter["lifetimeValue"] = bson.M{"$gte": *f.MinLifetime}
	}
	if !f.CreatedAfter.IsZero() {
		filter["createdAt"] = bson.M{"$gte": f.CreatedAfter}
	}
	return filter
}

func contactFilter(f models.ContactFilter) bson.M {
	filter := bson.M{}
	if f.CustomerID != "" {
		filter["customerId"] = f.CustomerID
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Search != "" {
		filter["$or"] = searchAny(f.Search, "value", "label")
	}
	return filter
}

func dealFilter(f models.DealFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = searchAny(f.Search, "title", "description")
	}
	if f.Stage != "" {
		filter["stage"] = f.Stage
	}
	if f.CustomerID != "" {
		filter["customerId"] = f.CustomerID
	}
	if f.AssignedUserID != "" {
		filter["assignedUserId"] = f.AssignedUserID
	}
	return filter
}

func taskFilter(f models.TaskFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = searchAny(f.Search, "title", "description")
	}
	switch {
	case f.Status != "":
		filter["status"] = f.Status
	case f.OpenOnly:
		filter["status"] = bson.M{"$nin": []models.TaskStatus{models.TaskStatusCOMPLETED, models.TaskStatusCANCELLED}}
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.CustomerID != "" {
		filter["customerId"] = f.CustomerID
	}
	if f.DealID != "" {
		filter["dealId"] = f.DealID
	}
	if f.AssignedUserID != "" {
		filter["assignedUserId"] = f.AssignedUserID
	}

	due := bson.M{}
	if !f.Due.From.IsZero() {
		due["$gte"] = f.Due.From
	}
	if !f.Due.To.IsZero() {
		due["$lt"] = f.Due.To
	}
	if len(due) > 0 {
		filter["dueDate"] = due
	}
	return filter
}

func interactionFilter(f models.InteractionFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = searchAny(f.Search, "subject", "content")
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Direction != "" {
		filter["direction"] = f.Direction
	}
	if f.CustomerID != "" {
		filter["customerId"] = f.CustomerID
	}
	if f.DealID != "" {
		filter["dealId"] = f.DealID
	}
	if f.Completed != nil {
		filter["completed"] = *f.Completed
	}
	return filter
}

func noteFilter(f models.NoteFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = searchAny(f.Search, "title", "content")
	}
	if f.Owner != nil {
		filter["owner.ownerType"] = f.Owner.Type
		filter["owner.ownerId"] = f.Owner.ID
	}
	if f.OwnerIDs != nil {
		filter["owner.ownerId"] = bson.M{"$in": f.OwnerIDs}
	}
	if f.CustomerID != "" {
		filter["customerId"] = f.CustomerID
	}
	if f.AuthorID != "" {
		filter["authorId"] = f.AuthorID
	}
	return filter
}

func userFilter(f models.UserFilter) bson.M {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.Search != "" {
		filter["$or"] = searchAny(f.Search, "email", "firstName", "lastName")
	}
	return filter
}

func activityLogFilter(f models.ActivityLogFilter) bson.M {
	filter := bson.M{}
	if f.Entity != "" {
		filter["entity"] = f.Entity
	}
	if f.EntityID != "" {
		filter["entityId"] = f.EntityID
	}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	return filter
}

func approvalFilter(f models.ApprovalFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Entity != "" {
		filter["entity"] = f.Entity
	}
	if f.RequestedBy != "" {
		filter["requestedBy"] = f.RequestedBy
	}
	return filter
}
