package repository

import (
	"context"
	"time"

	"github.com/BerniceZTT/crm_api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CustomerTagRepository manages the customer/tag join rows.
type CustomerTagRepository struct {
	links collection[models.CustomerTag]
}

func NewCustomerTagRepository(s *Store) *CustomerTagRepository {
	return &CustomerTagRepository{links: newCollection[models.CustomerTag](s, CustomerTagsCollection)}
}

// Add links a tag to a customer. Adding an existing link is a no-op.
func (r *CustomerTagRepository) Add(ctx context.Context, customerID, tagID string) (*models.CustomerTag, error) {
	filter := bson.M{"customerId": customerID, "tagId": tagID}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        models.NewID(),
		"customerId": customerID,
		"tagId":      tagID,
		"createdAt":  time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var link models.CustomerTag
	if err := r.links.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&link); err != nil {
		return nil, r.links.wrap("upsert", err)
	}
	return &link, nil
}

func (r *CustomerTagRepository) Remove(ctx context.Context, customerID, tagID string) error {
	res, err := r.links.coll.DeleteOne(ctx, bson.M{"customerId": customerID, "tagId": tagID})
	if err != nil {
		return r.links.wrap("delete", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Replace makes tagIDs the exact tag set of the customer.
func (r *CustomerTagRepository) Replace(ctx context.Context, customerID string, tagIDs []string) error {
	if _, err := r.links.coll.DeleteMany(ctx, bson.M{
		"customerId": customerID,
		"tagId":      bson.M{"$nin": tagIDs},
	}); err != nil {
		return r.links.wrap("delete many", err)
	}
	for _, tagID := range tagIDs {
		if _, err := r.Add(ctx, customerID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// TagIDsByCustomer maps each customer id to its tag ids.
func (r *CustomerTagRepository) TagIDsByCustomer(ctx context.Context, customerIDs []string) (map[string][]string, error) {
	links, err := r.links.findMany(ctx, bson.M{"customerId": bson.M{"$in": customerIDs}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	result := make(map[string][]string, len(customerIDs))
	for _, l := range links {
		result[l.CustomerID] = append(result[l.CustomerID], l.TagID)
	}
	return result, nil
}

// CustomerIDsWithAnyTag never returns nil, so an empty match filters out every row.
func (r *CustomerTagRepository) CustomerIDsWithAnyTag(ctx context.Context, tagIDs []string) ([]string, error) {
	links, err := r.links.findMany(ctx, bson.M{"tagId": bson.M{"$in": tagIDs}})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(links))
	ids := make([]string, 0, len(links))
	for _, l := range links {
		if !seen[l.CustomerID] {
			seen[l.CustomerID] = true
			ids = append(ids, l.CustomerID)
		}
	}
	return ids, nil
}

func (r *CustomerTagRepository) DeleteByTag(ctx context.Context, tagID string) error {
	if _, err := r.links.coll.DeleteMany(ctx, bson.M{"tagId": tagID}); err != nil {
		return r.links.wrap("delete many", err)
	}
	return nil
}
