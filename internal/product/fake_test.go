// AngelaMos | 2026
// fake_test.go

package product

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

type fakeRepo struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID]*Product
	lastQuery store.Query
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[primitive.ObjectID]*Product)}
}

func (f *fakeRepo) Insert(_ context.Context, p *Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p.ID = primitive.NewObjectID()
	cp := *p
	f.docs[p.ID] = &cp
	return nil
}

func (f *fakeRepo) List(_ context.Context, q store.Query) (*store.Page[Product], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = q
	items := make([]Product, 0, len(f.docs))
	for _, d := range f.docs {
		if st, ok := q.Filter["status"]; ok && st != d.Status {
			continue
		}
		items = append(items, *d)
	}
	return store.NewPage(items, int64(len(items)), q.Pagination.Page, q.Pagination.Limit), nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}
	d, ok := f.docs[oid]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

//nolint:forcetypeassert // test double
func (f *fakeRepo) Update(_ context.Context, id string, u store.Update) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}
	d, ok := f.docs[oid]
	if !ok {
		return nil, core.ErrNotFound
	}
	for k, v := range u.Set {
		switch k {
		case "status":
			d.Status = v.(Status)
		case "price":
			d.Price = v.(float64)
		case "name":
			d.Name = v.(string)
		case "tags":
			d.Tags = v.([]string)
		}
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrNotFound
	}
	if _, ok := f.docs[oid]; !ok {
		return core.ErrNotFound
	}
	delete(f.docs, oid)
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
