package repository

import (
	"context"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TagRepository struct {
	tags collection[models.Tag]
}

func NewTagRepository(s *Store) *TagRepository {
	return &TagRepository{tags: newCollection[models.Tag](s, TagsCollection)}
}

func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.tags.insert(ctx, tag)
}

func (r *TagRepository) FindByID(ctx context.Context, id string) (*models.Tag, error) {
	return r.tags.findByID(ctx, id)
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Tag, error) {
	return r.tags.findMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetSort(byName))
}

// FindOrCreateByName returns the tag called name, creating it with the
// default color when missing.
func (r *TagRepository) FindOrCreateByName(ctx context.Context, name string) (*models.Tag, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"_id":       models.NewID(),
		"name":      name,
		"color":     models.DefaultTagColor,
		"createdAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var tag models.Tag
	if err := r.tags.coll.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&tag); err != nil {
		return nil, r.tags.wrap("upsert", err)
	}
	return &tag, nil
}

func (r *TagRepository) Update(ctx context.Context, tag *models.Tag) error {
	return r.tags.replace(ctx, tag.ID, tag)
}

func (r *TagRepository) Delete(ctx context.Context, id string) error {
	return r.tags.deleteByID(ctx, id)
}

func (r *TagRepository) List(ctx context.Context, page utils.PageParams) ([]models.Tag, int64, error) {
	filter := bson.M{}
	if page.Search != "" {
		filter["name"] = containsRegex(page.Search)
	}
	return r.tags.findPage(ctx, filter, byName, page)
}
