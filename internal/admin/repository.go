// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

const CollectionName = "admins"

type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByID(ctx context.Context, id string) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, changedAt *time.Time) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
	EnsureIndexes(ctx context.Context) error
}

type repository struct {
	coll *store.Collection[Admin]
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{coll: store.NewCollection[Admin](db.Collection(CollectionName))}
}

func (r *repository) Create(ctx context.Context, a *Admin) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	id, err := r.coll.Insert(ctx, a)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	a.ID = id
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Admin, error) {
	a, err := r.coll.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	a, err := r.coll.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return a, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
	changedAt *time.Time,
) error {
	set := bson.M{"password": passwordHash}
	if changedAt != nil {
		set["passwordChangedAt"] = *changedAt
	}

	if _, err := r.coll.UpdateByID(ctx, id, store.Update{Set: set}); err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	return nil
}

func (r *repository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := r.coll.UpdateByID(ctx, id, store.Update{Set: bson.M{"lastLogin": at}}); err != nil {
		return fmt.Errorf("record admin login: %w", err)
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	if _, err := r.coll.UpdateByID(ctx, id, store.Update{Set: bson.M{"isActive": active}}); err != nil {
		return fmt.Errorf("set admin active: %w", err)
	}
	return nil
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	return r.coll.EnsureIndexes(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}
