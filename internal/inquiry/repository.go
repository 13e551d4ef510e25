// AngelaMos | 2026
// repository.go

package inquiry

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

type Repository interface {
	Insert(ctx context.Context, inq *Inquiry) error
	List(ctx context.Context, q store.Query) (*store.Page[Inquiry], error)
	All(ctx context.Context, filter bson.M) ([]Inquiry, error)
	GetByID(ctx context.Context, id string) (*Inquiry, error)
	Update(ctx context.Context, id string, u store.Update) (*Inquiry, error)
	UpdateMany(ctx context.Context, ids []string, u store.Update) (int64, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	EnsureIndexes(ctx context.Context) error
}

type repository struct {
	coll *store.Collection[Inquiry]
}

func NewRepository(db *mongo.Database, kind Kind) Repository {
	return &repository{coll: store.NewCollection[Inquiry](db.Collection(kind.Collection))}
}

func (r *repository) Insert(ctx context.Context, inq *Inquiry) error {
	id, err := r.coll.Insert(ctx, inq)
	if err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	inq.ID = id
	return nil
}

func (r *repository) List(ctx context.Context, q store.Query) (*store.Page[Inquiry], error) {
	return r.coll.Find(ctx, q)
}

func (r *repository) All(ctx context.Context, filter bson.M) ([]Inquiry, error) {
	return r.coll.FindAll(ctx, filter, bson.D{{Key: "createdAt", Value: store.SortDesc}})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Inquiry, error) {
	inq, err := r.coll.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	return inq, nil
}

func (r *repository) Update(ctx context.Context, id string, u store.Update) (*Inquiry, error) {
	inq, err := r.coll.UpdateByID(ctx, id, u)
	if err != nil {
		return nil, fmt.Errorf("update inquiry: %w", err)
	}
	return inq, nil
}

func (r *repository) UpdateMany(ctx context.Context, ids []string, u store.Update) (int64, error) {
	return r.coll.UpdateMany(ctx, ids, u)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.coll.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.coll.CountBy(ctx, "status")
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	return r.coll.EnsureIndexes(ctx,
		mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	)
}
