// AngelaMos | 2026
// collection.go

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
)

// Collection wraps a Mongo collection whose documents decode into T.
// Every write is a single-document atomic operation; UpdateMany applies
// per document and reports how many changed.
type Collection[T any] struct {
	coll *mongo.Collection
}

func NewCollection[T any](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll}
}

func (c *Collection[T]) Name() string {
	return c.coll.Name()
}

type Query struct {
	Filter     bson.M
	Pagination Pagination
}

func (c *Collection[T]) Find(ctx context.Context, q Query) (*Page[T], error) {
	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}

	total, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", c.Name(), err)
	}

	opts := options.Find().
		SetSort(q.Pagination.Sort()).
		SetSkip(q.Pagination.Skip()).
		SetLimit(int64(q.Pagination.Limit))

	items, err := c.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return NewPage(items, total, q.Pagination.Page, q.Pagination.Limit), nil
}

// FindAll returns every match, unpaginated.
func (c *Collection[T]) FindAll(
	ctx context.Context,
	filter bson.M,
	sort bson.D,
) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	return c.find(ctx, filter, opts)
}

func (c *Collection[T]) find(
	ctx context.Context,
	filter bson.M,
	opts *options.FindOptions,
) ([]T, error) {
	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.Name(), err)
	}

	items := make([]T, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	return items, nil
}

// FindByID treats a malformed id like a missing document.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}
	return c.FindOne(ctx, bson.M{"_id": oid})
}

func (c *Collection[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("find one %s: %w", c.Name(), err)
	}
	return &doc, nil
}

func (c *Collection[T]) Insert(
	ctx context.Context,
	doc *T,
) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, core.ErrDuplicateKey
		}
		return primitive.NilObjectID, fmt.Errorf("insert %s: %w", c.Name(), err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf(
			"insert %s: unexpected id type %T",
			c.Name(),
			res.InsertedID,
		)
	}
	return oid, nil
}

// Update is a $set/$unset pair. updatedAt is always stamped.
type Update struct {
	Set   bson.M
	Unset []string
}

func (u Update) document(now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	for k, v := range u.Set {
		set[k] = v
	}

	doc := bson.M{"$set": set}
	if len(u.Unset) > 0 {
		unset := bson.M{}
		for _, k := range u.Unset {
			unset[k] = ""
		}
		doc["$unset"] = unset
	}
	return doc
}

// UpdateByID applies u and returns the document after the update.
func (c *Collection[T]) UpdateByID(
	ctx context.Context,
	id string,
	u Update,
) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}
	return c.UpdateOne(ctx, bson.M{"_id": oid}, u)
}

func (c *Collection[T]) UpdateOne(
	ctx context.Context,
	filter bson.M,
	u Update,
) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	err := c.coll.FindOneAndUpdate(ctx, filter, u.document(time.Now().UTC()), opts).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, core.ErrDuplicateKey
		}
		return nil, fmt.Errorf("update %s: %w", c.Name(), err)
	}
	return &doc, nil
}

// UpdateMany applies u to every listed id. Malformed and unknown ids are
// skipped; the result is the number of documents actually modified.
func (c *Collection[T]) UpdateMany(
	ctx context.Context,
	ids []string,
	u Update,
) (int64, error) {
	oids := ObjectIDs(ids)
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := c.coll.UpdateMany(
		ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		u.document(time.Now().UTC()),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk update %s: %w", c.Name(), err)
	}
	return res.ModifiedCount, nil
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrNotFound
	}

	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.Name(), err)
	}
	if res.DeletedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.Name(), err)
	}
	return n, nil
}

// CountBy groups the collection on field and counts each value.
func (c *Collection[T]) CountBy(
	ctx context.Context,
	field string,
) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", c.Name(), err)
	}

	var rows []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s counts: %w", c.Name(), err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

func (c *Collection[T]) EnsureIndexes(
	ctx context.Context,
	models ...mongo.IndexModel,
) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := c.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create %s indexes: %w", c.Name(), err)
	}
	return nil
}
