// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

const CollectionName = "productcategories"

// treeOrder is the display order of the public tree.
var treeOrder = bson.D{
	{Key: "collection", Value: store.SortAsc},
	{Key: "sortOrder", Value: store.SortAsc},
	{Key: "category", Value: store.SortAsc},
	{Key: "subcategory", Value: store.SortAsc},
}

type Repository interface {
	Insert(ctx context.Context, c *Category) error
	Active(ctx context.Context, filter bson.M) ([]Category, error)
	List(ctx context.Context, q store.Query) (*store.Page[Category], error)
	GetByID(ctx context.Context, id string) (*Category, error)
	FindTriple(ctx context.Context, collection, category, subcategory string) (*Category, error)
	Update(ctx context.Context, id string, u store.Update) (*Category, error)
	Deactivate(ctx context.Context, id string) (*Category, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type repository struct {
	coll *store.Collection[Category]
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{coll: store.NewCollection[Category](db.Collection(CollectionName))}
}

func (r *repository) Insert(ctx context.Context, c *Category) error {
	id, err := r.coll.Insert(ctx, c)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	c.ID = id
	return nil
}

// Active returns the active categories matching filter in tree order.
func (r *repository) Active(ctx context.Context, filter bson.M) ([]Category, error) {
	f := bson.M{"isActive": true}
	for k, v := range filter {
		f[k] = v
	}
	return r.coll.FindAll(ctx, f, treeOrder)
}

func (r *repository) List(ctx context.Context, q store.Query) (*store.Page[Category], error) {
	return r.coll.Find(ctx, q)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	c, err := r.coll.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *repository) FindTriple(
	ctx context.Context,
	collection, category, subcategory string,
) (*Category, error) {
	return r.coll.FindOne(ctx, bson.M{
		"collection":  collection,
		"category":    category,
		"subcategory": subcategory,
	})
}

func (r *repository) Update(ctx context.Context, id string, u store.Update) (*Category, error) {
	c, err := r.coll.UpdateByID(ctx, id, u)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Deactivate only matches active categories, so a second call is ErrNotFound.
func (r *repository) Deactivate(ctx context.Context, id string) (*Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}
	c, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "isActive": true},
		store.Update{Set: bson.M{"isActive": false}},
	)
	if err != nil {
		return nil, fmt.Errorf("deactivate category: %w", err)
	}
	return c, nil
}

func (r *repository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.coll.Count(ctx, filter)
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	return r.coll.EnsureIndexes(ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "collection", Value: 1},
				{Key: "category", Value: 1},
				{Key: "subcategory", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("collection_category_subcategory"),
		},
		mongo.IndexModel{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "sortOrder", Value: 1}}},
	)
}
