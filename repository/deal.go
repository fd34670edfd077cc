package repository

import (
	"context"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DealRepository struct {
	deals collection[models.Deal]
}

func NewDealRepository(s *Store) *DealRepository {
	return &DealRepository{deals: newCollection[models.Deal](s, DealsCollection)}
}

func (r *DealRepository) Create(ctx context.Context, deal *models.Deal) error {
	return r.deals.insert(ctx, deal)
}

func (r *DealRepository) FindByID(ctx context.Context, id string) (*models.Deal, error) {
	return r.deals.findByID(ctx, id)
}

func (r *DealRepository) Update(ctx context.Context, deal *models.Deal) error {
	return r.deals.replace(ctx, deal.ID, deal)
}

func (r *DealRepository) Delete(ctx context.Context, id string) error {
	return r.deals.deleteByID(ctx, id)
}

func (r *DealRepository) List(ctx context.Context, f models.DealFilter, page utils.PageParams) ([]models.Deal, int64, error) {
	return r.deals.findPage(ctx, dealFilter(f), newestFirst, page)
}

func (r *DealRepository) FindAll(ctx context.Context, f models.DealFilter) ([]models.Deal, error) {
	return r.deals.findMany(ctx, dealFilter(f), options.Find().SetSort(newestFirst))
}

func (r *DealRepository) CountByCustomers(ctx context.Context, customerIDs []string) (map[string]int64, error) {
	return r.deals.countGrouped(ctx, bson.M{"customerId": bson.M{"$in": customerIDs}}, "customerId")
}

// StageTotals groups the deals matching f by stage.
func (r *DealRepository) StageTotals(ctx context.Context, f models.DealFilter) ([]models.StageBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: dealFilter(f)}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$stage",
			"count":        bson.M{"$sum": 1},
			"totalValue":   bson.M{"$sum": "$value"},
			"averageValue": bson.M{"$avg": "$value"},
		}}},
	}
	cursor, err := r.deals.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, r.deals.wrap("aggregate", err)
	}
	defer cursor.Close(ctx)

	buckets := make([]models.StageBucket, 0)
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, r.deals.wrap("decode aggregate", err)
	}
	return buckets, nil
}
