// AngelaMos | 2026
// repository.go

package newsletter

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

const CollectionName = "newsletteremails"

type Repository interface {
	Insert(ctx context.Context, sub *Subscriber) error
	List(ctx context.Context, q store.Query) (*store.Page[Subscriber], error)
	All(ctx context.Context, filter bson.M) ([]Subscriber, error)
	GetByID(ctx context.Context, id string) (*Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	Update(ctx context.Context, id string, u store.Update) (*Subscriber, error)
	UpdateMany(ctx context.Context, ids []string, u store.Update) (int64, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	EnsureIndexes(ctx context.Context) error
}

type repository struct {
	coll *store.Collection[Subscriber]
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{coll: store.NewCollection[Subscriber](db.Collection(CollectionName))}
}

func (r *repository) Insert(ctx context.Context, sub *Subscriber) error {
	id, err := r.coll.Insert(ctx, sub)
	if err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	sub.ID = id
	return nil
}

func (r *repository) List(ctx context.Context, q store.Query) (*store.Page[Subscriber], error) {
	return r.coll.Find(ctx, q)
}

func (r *repository) All(ctx context.Context, filter bson.M) ([]Subscriber, error) {
	return r.coll.FindAll(ctx, filter, bson.D{{Key: "subscribedAt", Value: store.SortDesc}})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Subscriber, error) {
	sub, err := r.coll.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get subscriber: %w", err)
	}
	return sub, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Subscriber, error) {
	sub, err := r.coll.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("get subscriber by email: %w", err)
	}
	return sub, nil
}

func (r *repository) Update(ctx context.Context, id string, u store.Update) (*Subscriber, error) {
	sub, err := r.coll.UpdateByID(ctx, id, u)
	if err != nil {
		return nil, fmt.Errorf("update subscriber: %w", err)
	}
	return sub, nil
}

func (r *repository) UpdateMany(ctx context.Context, ids []string, u store.Update) (int64, error) {
	return r.coll.UpdateMany(ctx, ids, u)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.coll.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.coll.CountBy(ctx, "status")
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	return r.coll.EnsureIndexes(ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "subscribedAt", Value: -1}}},
	)
}
