package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection        = "users"
	CustomersCollection    = "customers"
	CustomerTagsCollection = "customer_tags"
	ContactsCollection     = "contacts"
	DealsCollection        = "deals"
	TasksCollection        = "tasks"
	InteractionsCollection = "interactions"
	NotesCollection        = "notes"
	TagsCollection         = "tags"
	ActivityLogsCollection = "activity_logs"
	ApprovalsCollection    = "approval_requests"
)

var allCollections = []string{
	UsersCollection,
	CustomersCollection,
	CustomerTagsCollection,
	ContactsCollection,
	DealsCollection,
	TasksCollection,
	InteractionsCollection,
	NotesCollection,
	TagsCollection,
	ActivityLogsCollection,
	ApprovalsCollection,
}

// Store owns the MongoDB client. It is created once in main and closed at shutdown.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	utils.Logger.Info().Str("database", dbName).Msg("connected to MongoDB")
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// clientOptions decodes untyped embedded documents (audit change sets,
// custom field values) as maps so they serialize to JSON objects.
func clientOptions(uri string) *options.ClientOptions {
	return options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	utils.Logger.Info().Msg("disconnected from MongoDB")
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// InitializeCollections creates missing collections and the indexes the
// services rely on for uniqueness.
func (s *Store) InitializeCollections(ctx context.Context) error {
	existing, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	for _, name := range allCollections {
		if have[name] {
			continue
		}
		if err := s.db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
		utils.Logger.Info().Str("collection", name).Msg("collection created")
	}

	return s.ensureIndexes(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		CustomersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "assignedUserId", Value: 1}}},
		},
		CustomerTagsCollection: {
			{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "tagId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "tagId", Value: 1}}},
		},
		TagsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		ContactsCollection: {
			{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "type", Value: 1}}},
		},
		DealsCollection: {
			{Keys: bson.D{{Key: "customerId", Value: 1}}},
			{Keys: bson.D{{Key: "stage", Value: 1}}},
		},
		TasksCollection: {
			{Keys: bson.D{{Key: "customerId", Value: 1}}},
			{Keys: bson.D{{Key: "dealId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "dueDate", Value: 1}}},
		},
		InteractionsCollection: {
			{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "dealId", Value: 1}}},
		},
		NotesCollection: {
			{Keys: bson.D{{Key: "owner.ownerType", Value: 1}, {Key: "owner.ownerId", Value: 1}}},
			{Keys: bson.D{{Key: "customerId", Value: 1}}},
		},
		ActivityLogsCollection: {
			{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entityId", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		ApprovalsCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// InitializeAdminAccount creates the first ADMIN user when none exists.
func (s *Store) InitializeAdminAccount(ctx context.Context, email, passwordHash string) error {
	users := s.db.Collection(UsersCollection)

	count, err := users.CountDocuments(ctx, bson.M{"role": models.UserRoleADMIN})
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		utils.Logger.Info().Msg("admin account exists, skipping seed")
		return nil
	}

	admin := models.User{
		ID:        models.NewID(),
		Email:     email,
		Password:  passwordHash,
		FirstName: "System",
		LastName:  "Admin",
		Role:      models.UserRoleADMIN,
		IsActive:  true,
	}
	admin.Touch(time.Now())

	if _, err := users.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("seed admin: email %s already used by a non-admin account", email)
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	utils.Logger.Info().Str("email", email).Msg("default admin account created")
	return nil
}

// DatabaseStatus reports document counts per collection.
func (s *Store) DatabaseStatus(ctx context.Context) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(allCollections))
	var failed int
	for _, name := range allCollections {
		count, err := s.db.Collection(name).EstimatedDocumentCount(ctx)
		if err != nil {
			failed++
			utils.Logger.Error().Err(err).Str("collection", name).Msg("count collection failed")
			result[name] = map[string]interface{}{"count": 0, "error": err.Error()}
			continue
		}
		result[name] = map[string]interface{}{"count": count}
	}
	if failed == len(allCollections) {
		return result, errors.New("database unreachable")
	}
	return result, nil
}
