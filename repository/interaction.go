package repository

import (
	"context"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InteractionRepository struct {
	interactions collection[models.Interaction]
}

func NewInteractionRepository(s *Store) *InteractionRepository {
	return &InteractionRepository{interactions: newCollection[models.Interaction](s, InteractionsCollection)}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	return r.interactions.insert(ctx, interaction)
}

func (r *InteractionRepository) FindByID(ctx context.Context, id string) (*models.Interaction, error) {
	return r.interactions.findByID(ctx, id)
}

func (r *InteractionRepository) Update(ctx context.Context, interaction *models.Interaction) error {
	return r.interactions.replace(ctx, interaction.ID, interaction)
}

func (r *InteractionRepository) Delete(ctx context.Context, id string) error {
	return r.interactions.deleteByID(ctx, id)
}

func (r *InteractionRepository) List(ctx context.Context, f models.InteractionFilter, page utils.PageParams) ([]models.Interaction, int64, error) {
	return r.interactions.findPage(ctx, interactionFilter(f), newestFirst, page)
}

func (r *InteractionRepository) FindAll(ctx context.Context, f models.InteractionFilter) ([]models.Interaction, error) {
	return r.interactions.findMany(ctx, interactionFilter(f), options.Find().SetSort(newestFirst))
}

func (r *InteractionRepository) TypeCounts(ctx context.Context, customerID string) (map[string]int64, error) {
	return r.interactions.countGrouped(ctx, bson.M{"customerId": customerID}, "type")
}

func (r *InteractionRepository) CountByCustomers(ctx context.Context, customerIDs []string) (map[string]int64, error) {
	return r.interactions.countGrouped(ctx, bson.M{"customerId": bson.M{"$in": customerIDs}}, "customerId")
}
