package repository

import (
	"context"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var primaryFirst = bson.D{{Key: "isPrimary", Value: -1}, {Key: "createdAt", Value: -1}}

type ContactRepository struct {
	contacts collection[models.Contact]
}

func NewContactRepository(s *Store) *ContactRepository {
	return &ContactRepository{contacts: newCollection[models.Contact](s, ContactsCollection)}
}

func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.contacts.insert(ctx, contact)
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	return r.contacts.findByID(ctx, id)
}

func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	return r.contacts.replace(ctx, contact.ID, contact)
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return r.contacts.deleteByID(ctx, id)
}

func (r *ContactRepository) List(ctx context.Context, f models.ContactFilter, page utils.PageParams) ([]models.Contact, int64, error) {
	return r.contacts.findPage(ctx, contactFilter(f), primaryFirst, page)
}

func (r *ContactRepository) FindAll(ctx context.Context, f models.ContactFilter) ([]models.Contact, error) {
	return r.contacts.findMany(ctx, contactFilter(f), options.Find().SetSort(primaryFirst))
}

// ClearPrimary demotes every other contact of the same customer and type.
func (r *ContactRepository) ClearPrimary(ctx context.Context, customerID string, typ models.ContactType, exceptID string) error {
	_, err := r.contacts.coll.UpdateMany(ctx,
		bson.M{"customerId": customerID, "type": typ, "isPrimary": true, "_id": bson.M{"$ne": exceptID}},
		bson.M{"$set": bson.M{"isPrimary": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return r.contacts.wrap("clear primary", err)
	}
	return nil
}

func (r *ContactRepository) CountByCustomers(ctx context.Context, customerIDs []string) (map[string]int64, error) {
	return r.contacts.countGrouped(ctx, bson.M{"customerId": bson.M{"$in": customerIDs}}, "customerId")
}
