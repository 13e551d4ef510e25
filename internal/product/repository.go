// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

const CollectionName = "products"

type Repository interface {
	Insert(ctx context.Context, p *Product) error
	List(ctx context.Context, q store.Query) (*store.Page[Product], error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, id string, u store.Update) (*Product, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	EnsureIndexes(ctx context.Context) error
}

type repository struct {
	coll *store.Collection[Product]
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{coll: store.NewCollection[Product](db.Collection(CollectionName))}
}

func (r *repository) Insert(ctx context.Context, p *Product) error {
	id, err := r.coll.Insert(ctx, p)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID = id
	return nil
}

func (r *repository) List(ctx context.Context, q store.Query) (*store.Page[Product], error) {
	return r.coll.Find(ctx, q)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	p, err := r.coll.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id string, u store.Update) (*Product, error) {
	p, err := r.coll.UpdateByID(ctx, id, u)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.coll.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.coll.CountBy(ctx, "status")
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	return r.coll.EnsureIndexes(ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "tags", Value: "text"},
			},
			Options: options.Index().
				SetName("product_search").
				SetWeights(bson.D{
					{Key: "name", Value: 10},
					{Key: "tags", Value: 5},
					{Key: "description", Value: 1},
				}),
		},
		mongo.IndexModel{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "category", Value: 1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "featured", Value: 1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "price", Value: 1}}},
	)
}
