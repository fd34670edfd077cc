package repository

import (
	"context"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type UserRepository struct {
	users collection[models.User]
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{users: newCollection[models.User](s, UsersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.users.insert(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.users.findByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.users.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.users.replace(ctx, user.ID, user)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.users.deleteByID(ctx, id)
}

func (r *UserRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return r.users.updateFields(ctx, id, bson.M{"lastLoginAt": at})
}

func (r *UserRepository) List(ctx context.Context, f models.UserFilter, page utils.PageParams) ([]models.User, int64, error) {
	return r.users.findPage(ctx, userFilter(f), newestFirst, page)
}

// FindByIDs returns the users with the given ids in no particular order.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	return r.users.findMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}
