package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotFound is returned when no document matches an id.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
	// ErrConflict is returned when a guarded update matched nothing.
	ErrConflict = errors.New("document changed concurrently")
)

// collection is the typed access shared by every repository.
type collection[T any] struct {
	coll *mongo.Collection
}

func newCollection[T any](s *Store, name string) collection[T] {
	return collection[T]{coll: s.Collection(name)}
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return c.wrap("insert", err)
	}
	return nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	if err := c.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, c.wrap("find one", err)
	}
	return &doc, nil
}

func (c collection[T]) findByID(ctx context.Context, id string) (*T, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

func (c collection[T]) findMany(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	utils.LogDbOperation("find", c.coll.Name(), filter)

	cursor, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, c.wrap("find", err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, c.wrap("decode", err)
	}
	return docs, nil
}

// findPage runs the count and the page query concurrently.
func (c collection[T]) findPage(ctx context.Context, filter bson.M, sort bson.D, page utils.PageParams) ([]T, int64, error) {
	var (
		docs  []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := c.coll.CountDocuments(gctx, filter)
		if err != nil {
			return c.wrap("count", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		opts := options.Find().
			SetSort(sort).
			SetSkip(page.Skip()).
			SetLimit(int64(page.Limit))
		found, err := c.findMany(gctx, filter, opts)
		docs = found
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (c collection[T]) count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, c.wrap("count", err)
	}
	return n, nil
}

func (c collection[T]) replace(ctx context.Context, id string, doc *T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return c.wrap("replace", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c collection[T]) updateFields(ctx context.Context, id string, set bson.M) error {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return c.wrap("update", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c collection[T]) deleteByID(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.wrap("delete", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// countGrouped counts documents matching match, grouped by field.
func (c collection[T]) countGrouped(ctx context.Context, match bson.M, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, c.wrap("aggregate", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, c.wrap("decode aggregate", err)
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Key] = row.Count
	}
	return result, nil
}

func (c collection[T]) wrap(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %s: %w", c.coll.Name(), op, ErrDuplicate)
	}
	return fmt.Errorf("%s %s: %w", c.coll.Name(), op, err)
}

// containsRegex matches s anywhere in a field, case-insensitively.
func containsRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// searchAny builds an $or of case-insensitive substring matches.
func searchAny(search string, fields ...string) []bson.M {
	clauses := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, bson.M{f: containsRegex(search)})
	}
	return clauses
}

var (
	newestFirst = bson.D{{Key: "createdAt", Value: -1}}
	byName      = bson.D{{Key: "name", Value: 1}}
)
