// AngelaMos | 2026
// fake_test.go

package newsletter

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

type fakeRepo struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID]*Subscriber
	lastQuery store.Query
	// insertErr simulates a racing insert that lost on the unique index.
	insertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[primitive.ObjectID]*Subscriber)}
}

func (f *fakeRepo) Insert(_ context.Context, sub *Subscriber) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return f.insertErr
	}
	for _, d := range f.docs {
		if d.Email == sub.Email {
			return core.ErrDuplicateKey
		}
	}
	sub.ID = primitive.NewObjectID()
	cp := *sub
	f.docs[sub.ID] = &cp
	return nil
}

func (f *fakeRepo) List(_ context.Context, q store.Query) (*store.Page[Subscriber], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = q
	items := f.all()
	return store.NewPage(items, int64(len(items)), q.Pagination.Page, q.Pagination.Limit), nil
}

func (f *fakeRepo) All(_ context.Context, filter bson.M) ([]Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = store.Query{Filter: filter}
	return f.all(), nil
}

func (f *fakeRepo) all() []Subscriber {
	out := make([]Subscriber, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, *d)
	}
	return out
}

func (f *fakeRepo) find(id string) (*Subscriber, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}
	d, ok := f.docs[oid]
	if !ok {
		return nil, core.ErrNotFound
	}
	return d, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.find(id)
	if err != nil {
		return nil, err
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, d := range f.docs {
		if d.Email == email {
			cp := *d
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

//nolint:forcetypeassert // test double
func apply(d *Subscriber, u store.Update) {
	for k, v := range u.Set {
		switch k {
		case "status":
			d.Status = v.(Status)
		case "subscribedAt":
			d.SubscribedAt = v.(time.Time)
		case "unsubscribedAt":
			at := v.(time.Time)
			d.UnsubscribedAt = &at
		case "tags":
			d.Tags = v.([]string)
		}
	}
	for _, k := range u.Unset {
		if k == "unsubscribedAt" {
			d.UnsubscribedAt = nil
		}
	}
}

func (f *fakeRepo) Update(_ context.Context, id string, u store.Update) (*Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.find(id)
	if err != nil {
		return nil, err
	}
	apply(d, u)
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) UpdateMany(_ context.Context, ids []string, u store.Update) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, oid := range store.ObjectIDs(ids) {
		if d, ok := f.docs[oid]; ok {
			apply(d, u)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.find(id)
	if err != nil {
		return err
	}
	delete(f.docs, d.ID)
	return nil
}

func (f *fakeRepo) CountByStatus(context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := map[string]int64{}
	for _, d := range f.docs {
		out[string(d.Status)]++
	}
	return out, nil
}

func (f *fakeRepo) EnsureIndexes(context.Context) error { return nil }
