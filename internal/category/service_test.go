// AngelaMos | 2026
// service_test.go

package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

func defaultPage() store.Pagination {
	return store.Pagination{Page: 1, Limit: 10, SortBy: store.DefaultSort, SortOrder: store.SortDesc}
}

func create(t *testing.T, s *Service, collection, cat, sub string, order int) *Category {
	t.Helper()

	c, reactivated, err := s.Create(context.Background(), CreateRequest{
		Collection:  collection,
		Category:    cat,
		Subcategory: sub,
		SortOrder:   order,
	})
	require.NoError(t, err)
	require.False(t, reactivated)
	return c
}

func TestBuildTreeGroupsInOrder(t *testing.T) {
	cats := []Category{
		{Collection: core.CollectionMirror, Category: "Wall Mirrors"},
		{Collection: core.CollectionMirror, Category: "Wall Mirrors", Subcategory: "Oval"},
		{Collection: core.CollectionMirror, Category: "Wall Mirrors", Subcategory: "Round"},
		{Collection: core.CollectionMirror, Category: "Floor Mirrors", Subcategory: "Arched"},
		{Collection: core.CollectionScarfs, Category: "Silk"},
		{Collection: "Retired Line", Category: "Ignored"},
	}

	tree := buildTree(core.Collections, cats)
	require.Len(t, tree, len(core.Collections))

	mirror := tree[0]
	assert.Equal(t, core.CollectionMirror, mirror.Collection)
	require.Len(t, mirror.Categories, 2)
	assert.Equal(t, "Wall Mirrors", mirror.Categories[0].Name)
	assert.Equal(t, []string{"Oval", "Round"}, mirror.Categories[0].Subcategories)
	assert.Equal(t, "Floor Mirrors", mirror.Categories[1].Name)
	assert.Equal(t, []string{"Arched"}, mirror.Categories[1].Subcategories)

	scarfs := tree[1]
	require.Len(t, scarfs.Categories, 1)
	assert.Equal(t, []string{}, scarfs.Categories[0].Subcategories)

	bag := tree[2]
	assert.Equal(t, core.CollectionBag, bag.Collection)
	assert.NotNil(t, bag.Categories)
	assert.Empty(t, bag.Categories)
}

func TestTreeSkipsInactive(t *testing.T) {
	s := NewService(newFakeRepo())
	ctx := context.Background()

	create(t, s, core.CollectionMirror, "Wall Mirrors", "Oval", 0)
	gone := create(t, s, core.CollectionMirror, "Wall Mirrors", "Square", 1)
	require.NoError(t, s.Delete(ctx, gone.ID.Hex()))

	tree, err := s.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree[0].Categories, 1)
	assert.Equal(t, []string{"Oval"}, tree[0].Categories[0].Subcategories)
}

func TestByCollection(t *testing.T) {
	s := NewService(newFakeRepo())
	ctx := context.Background()

	create(t, s, core.CollectionScarfs, "Silk", "", 0)
	create(t, s, core.CollectionMirror, "Wall Mirrors", "", 0)

	node, err := s.ByCollection(ctx, core.CollectionScarfs)
	require.NoError(t, err)
	assert.Equal(t, core.CollectionScarfs, node.Collection)
	require.Len(t, node.Categories, 1)
	assert.Equal(t, "Silk", node.Categories[0].Name)

	_, err = s.ByCollection(ctx, "Lamps")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateConflictAndReactivate(t *testing.T) {
	s := NewService(newFakeRepo())
	ctx := context.Background()

	first := create(t, s, core.CollectionBag, "Linen", "Natural", 2)
	assert.True(t, first.IsActive)

	_, _, err := s.Create(ctx, CreateRequest{
		Collection:  core.CollectionBag,
		Category:    "Linen",
		Subcategory: "Natural",
	})
	assert.ErrorIs(t, err, ErrCategoryExists)

	require.NoError(t, s.Delete(ctx, first.ID.Hex()))
	got, err := s.Get(ctx, first.ID.Hex())
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	again, reactivated, err := s.Create(ctx, CreateRequest{
		Collection:  core.CollectionBag,
		Category:    "Linen",
		Subcategory: "Natural",
		SortOrder:   7,
	})
	require.NoError(t, err)
	assert.True(t, reactivated)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.IsActive)
	assert.Equal(t, 7, again.SortOrder)
}

func TestUpdateDuplicateTriple(t *testing.T) {
	s := NewService(newFakeRepo())
	ctx := context.Background()

	create(t, s, core.CollectionMirror, "Wall Mirrors", "Oval", 0)
	other := create(t, s, core.CollectionMirror, "Wall Mirrors", "Round", 1)

	oval := "Oval"
	_, err := s.Update(ctx, other.ID.Hex(), UpdateRequest{Subcategory: &oval})
	assert.ErrorIs(t, err, ErrCategoryExists)

	order := 4
	updated, err := s.Update(ctx, other.ID.Hex(), UpdateRequest{SortOrder: &order})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.SortOrder)

	unchanged, err := s.Update(ctx, other.ID.Hex(), UpdateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Round", unchanged.Subcategory)
}

func TestDeleteUnknown(t *testing.T) {
	s := NewService(newFakeRepo())
	err := s.Delete(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteTwice(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo)
	c := create(t, s, core.CollectionScarfs, "Silk", "", 0)

	require.NoError(t, s.Delete(context.Background(), c.ID.Hex()))
	err := s.Delete(context.Background(), c.ID.Hex())
	assert.ErrorIs(t, err, core.ErrNotFound)

	got, err := s.Get(context.Background(), c.ID.Hex())
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestAdminListFilter(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo)
	active := false

	_, err := s.AdminList(context.Background(), AdminListParams{
		Collection: core.CollectionScarfs,
		Active:     &active,
		Search:     "silk",
	}, defaultPage())
	require.NoError(t, err)

	f := repo.lastQuery.Filter
	assert.Equal(t, core.CollectionScarfs, f["collection"])
	assert.Equal(t, false, f["isActive"])
	assert.Len(t, f["$or"], 2)

	_, err = s.AdminList(context.Background(), AdminListParams{}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, bson.M{}, repo.lastQuery.Filter)
}

func TestStatusCounts(t *testing.T) {
	s := NewService(newFakeRepo())
	ctx := context.Background()

	create(t, s, core.CollectionMirror, "A", "", 0)
	b := create(t, s, core.CollectionMirror, "B", "", 0)
	require.NoError(t, s.Delete(ctx, b.ID.Hex()))

	counts, err := s.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"active": 1, "inactive": 1}, counts)
}
