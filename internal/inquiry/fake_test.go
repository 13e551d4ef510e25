// AngelaMos | 2026
// fake_test.go

package inquiry

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

type fakeRepo struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID]*Inquiry
	order     []primitive.ObjectID
	lastQuery store.Query
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[primitive.ObjectID]*Inquiry)}
}

func (f *fakeRepo) Insert(_ context.Context, inq *Inquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	inq.ID = primitive.NewObjectID()
	cp := *inq
	f.docs[inq.ID] = &cp
	f.order = append(f.order, inq.ID)
	return nil
}

func (f *fakeRepo) List(_ context.Context, q store.Query) (*store.Page[Inquiry], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = q
	items := f.all()
	return store.NewPage(items, int64(len(items)), q.Pagination.Page, q.Pagination.Limit), nil
}

func (f *fakeRepo) All(_ context.Context, filter bson.M) ([]Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = store.Query{Filter: filter}
	return f.all(), nil
}

func (f *fakeRepo) all() []Inquiry {
	out := make([]Inquiry, 0, len(f.order))
	for _, id := range f.order {
		if d, ok := f.docs[id]; ok {
			out = append(out, *d)
		}
	}
	return out
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Inquiry, error) {
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

func (f *fakeRepo) apply(d *Inquiry, u store.Update) {
	for k, v := range u.Set {
		switch k {
		case "status":
			d.Status = v.(Status) //nolint:forcetypeassert // test double
		case "adminNotes":
			d.AdminNotes = v.(string) //nolint:forcetypeassert // test double
		}
	}
}

func (f *fakeRepo) Update(_ context.Context, id string, u store.Update) (*Inquiry, error) {
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
	f.apply(d, u)
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) UpdateMany(_ context.Context, ids []string, u store.Update) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, oid := range store.ObjectIDs(ids) {
		if d, ok := f.docs[oid]; ok {
			f.apply(d, u)
			n++
		}
	}
	return n, nil
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

func (f *fakeRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := map[string]int64{}
	for _, d := range f.docs {
		out[string(d.Status)]++
	}
	return out, nil
}

func (f *fakeRepo) EnsureIndexes(context.Context) error { return nil }
