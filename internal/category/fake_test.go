// AngelaMos | 2026
// fake_test.go

package category

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

// fakeRepo keeps documents in memory and enforces the unique triple
// the way the Mongo index does.
type fakeRepo struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID]*Category
	lastQuery store.Query
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[primitive.ObjectID]*Category)}
}

func (f *fakeRepo) clash(c *Category) bool {
	for id, d := range f.docs {
		if id != c.ID &&
			d.Collection == c.Collection &&
			d.Category == c.Category &&
			d.Subcategory == c.Subcategory {
			return true
		}
	}
	return false
}

func (f *fakeRepo) Insert(_ context.Context, c *Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.clash(c) {
		return core.ErrDuplicateKey
	}
	c.ID = primitive.NewObjectID()
	cp := *c
	f.docs[c.ID] = &cp
	return nil
}

func (f *fakeRepo) Active(_ context.Context, filter bson.M) ([]Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Category, 0, len(f.docs))
	for _, d := range f.docs {
		if !d.IsActive {
			continue
		}
		if col, ok := filter["collection"]; ok && col != d.Collection {
			continue
		}
		out = append(out, *d)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Collection != b.Collection {
			return a.Collection < b.Collection
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Subcategory < b.Subcategory
	})
	return out, nil
}

func (f *fakeRepo) List(_ context.Context, q store.Query) (*store.Page[Category], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = q
	items := make([]Category, 0, len(f.docs))
	for _, d := range f.docs {
		items = append(items, *d)
	}
	return store.NewPage(items, int64(len(items)), q.Pagination.Page, q.Pagination.Limit), nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) lookup(id string) (*Category, error) {
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

func (f *fakeRepo) FindTriple(
	_ context.Context,
	collection, category, subcategory string,
) (*Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, d := range f.docs {
		if d.Collection == collection && d.Category == category && d.Subcategory == subcategory {
			cp := *d
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

//nolint:forcetypeassert // test double
func (f *fakeRepo) Update(_ context.Context, id string, u store.Update) (*Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.lookup(id)
	if err != nil {
		return nil, err
	}

	next := *d
	for k, v := range u.Set {
		switch k {
		case "collection":
			next.Collection = v.(string)
		case "category":
			next.Category = v.(string)
		case "subcategory":
			next.Subcategory = v.(string)
		case "sortOrder":
			next.SortOrder = v.(int)
		case "isActive":
			next.IsActive = v.(bool)
		}
	}
	if f.clash(&next) {
		return nil, core.ErrDuplicateKey
	}

	*d = next
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) Deactivate(_ context.Context, id string) (*Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	if !d.IsActive {
		return nil, core.ErrNotFound
	}
	d.IsActive = false
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) Count(_ context.Context, filter bson.M) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, d := range f.docs {
		if active, ok := filter["isActive"]; ok && active != d.IsActive {
			continue
		}
		n++
	}
	return n, nil
}

func (f *fakeRepo) EnsureIndexes(context.Context) error { return nil }
