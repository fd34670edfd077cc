package repository

import (
	"context"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NoteRepository struct {
	notes collection[models.Note]
}

func NewNoteRepository(s *Store) *NoteRepository {
	return &NoteRepository{notes: newCollection[models.Note](s, NotesCollection)}
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.notes.insert(ctx, note)
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*models.Note, error) {
	return r.notes.findByID(ctx, id)
}

func (r *NoteRepository) Update(ctx context.Context, note *models.Note) error {
	return r.notes.replace(ctx, note.ID, note)
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	return r.notes.deleteByID(ctx, id)
}

func (r *NoteRepository) List(ctx context.Context, f models.NoteFilter, page utils.PageParams) ([]models.Note, int64, error) {
	return r.notes.findPage(ctx, noteFilter(f), newestFirst, page)
}

func (r *NoteRepository) FindAll(ctx context.Context, f models.NoteFilter) ([]models.Note, error) {
	return r.notes.findMany(ctx, noteFilter(f), options.Find().SetSort(newestFirst))
}

func (r *NoteRepository) CountByCustomers(ctx context.Context, customerIDs []string) (map[string]int64, error) {
	return r.notes.countGrouped(ctx, bson.M{"customerId": bson.M{"$in": customerIDs}}, "customerId")
}
