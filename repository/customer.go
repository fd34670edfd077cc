package repository

import (
	"context"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CustomerRepository struct {
	customers    collection[models.Customer]
	customerTags *CustomerTagRepository
}

func NewCustomerRepository(s *Store, customerTags *CustomerTagRepository) *CustomerRepository {
	return &CustomerRepository{
		customers:    newCollection[models.Customer](s, CustomersCollection),
		customerTags: customerTags,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.customers.insert(ctx, customer)
}

// FindByID returns the customer whether or not it is soft deleted.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	return r.customers.findByID(ctx, id)
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.customers.findOne(ctx, bson.M{"email": email})
}

func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.customers.replace(ctx, customer.ID, customer)
}

// SoftDelete clears isActive. The row stays readable by id.
func (r *CustomerRepository) SoftDelete(ctx context.Context, id string) error {
	return r.customers.updateFields(ctx, id, bson.M{"isActive": false, "updatedAt": time.Now()})
}

func (r *CustomerRepository) List(ctx context.Context, f models.CustomerFilter, page utils.PageParams) ([]models.Customer, int64, error) {
	filter, err := r.filter(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return r.customers.findPage(ctx, filter, newestFirst, page)
}

// FindAll returns every customer matching f, newest first.
func (r *CustomerRepository) FindAll(ctx context.Context, f models.CustomerFilter) ([]models.Customer, error) {
	filter, err := r.filter(ctx, f)
	if err != nil {
		return nil, err
	}
	return r.customers.findMany(ctx, filter, options.Find().SetSort(newestFirst))
}

func (r *CustomerRepository) filter(ctx context.Context, f models.CustomerFilter) (bson.M, error) {
	var tagged []string
	if len(f.TagIDs) > 0 {
		ids, err := r.customerTags.CustomerIDsWithAnyTag(ctx, f.TagIDs)
		if err != nil {
			return nil, err
		}
		tagged = ids
	}
	return customerFilter(f, tagged), nil
}

// StatusSummary groups active customers by status.
func (r *CustomerRepository) StatusSummary(ctx context.Context) ([]models.StatusSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":                "$status",
			"count":              bson.M{"$sum": 1},
			"averageScore":       bson.M{"$avg": "$score"},
			"totalLifetimeValue": bson.M{"$sum": "$lifetimeValue"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := r.customers.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, r.customers.wrap("aggregate", err)
	}
	defer cursor.Close(ctx)

	rows := make([]models.StatusSummary, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, r.customers.wrap("decode aggregate", err)
	}
	return rows, nil
}
