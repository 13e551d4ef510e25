// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

var ErrCategoryExists = errors.New("category already exists")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListActive(ctx context.Context) ([]Category, error) {
	return s.repo.Active(ctx, nil)
}

// Tree groups active categories under every collection, in display
// order. Collections without categories are still listed.
func (s *Service) Tree(ctx context.Context) ([]CollectionNode, error) {
	cats, err := s.repo.Active(ctx, nil)
	if err != nil {
		return nil, err
	}
	return buildTree(core.Collections, cats), nil
}

// ByCollection returns the subtree of one collection. An unknown
// collection is not found.
func (s *Service) ByCollection(ctx context.Context, collection string) (*CollectionNode, error) {
	if !core.IsCollection(collection) {
		return nil, core.ErrNotFound
	}

	cats, err := s.repo.Active(ctx, bson.M{"collection": collection})
	if err != nil {
		return nil, err
	}

	tree := buildTree([]string{collection}, cats)
	return &tree[0], nil
}

func buildTree(collections []string, cats []Category) []CollectionNode {
	out := make([]CollectionNode, len(collections))
	index := make(map[string]int, len(collections))
	for i, c := range collections {
		out[i] = CollectionNode{Collection: c, Categories: []CategoryNode{}}
		index[c] = i
	}

	catIndex := make(map[[2]string]int)
	for _, c := range cats {
		ci, ok := index[c.Collection]
		if !ok {
			continue
		}
		node := &out[ci]

		key := [2]string{c.Collection, c.Category}
		pos, seen := catIndex[key]
		if !seen {
			node.Categories = append(node.Categories, CategoryNode{
				Name:          c.Category,
				Subcategories: []string{},
			})
			pos = len(node.Categories) - 1
			catIndex[key] = pos
		}

		if c.Subcategory != "" {
			node.Categories[pos].Subcategories = append(
				node.Categories[pos].Subcategories,
				c.Subcategory,
			)
		}
	}
	return out
}

func (s *Service) AdminList(
	ctx context.Context,
	p AdminListParams,
	page store.Pagination,
) (*store.Page[Category], error) {
	filter := bson.M{}
	if p.Collection != "" {
		filter["collection"] = p.Collection
	}
	if p.Active != nil {
		filter["isActive"] = *p.Active
	}
	if or := store.SearchAny(p.Search, "category", "subcategory"); or != nil {
		filter["$or"] = or
	}
	return s.repo.List(ctx, store.Query{Filter: filter, Pagination: page})
}

func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a category. A soft-deleted entry with the same triple is
// reactivated instead; an active one is a conflict.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Category, bool, error) {
	existing, err := s.repo.FindTriple(ctx, req.Collection, req.Category, req.Subcategory)
	switch {
	case err == nil:
		if existing.IsActive {
			return nil, false, ErrCategoryExists
		}
		c, err := s.repo.Update(ctx, existing.ID.Hex(), store.Update{Set: bson.M{
			"isActive":  true,
			"sortOrder": req.SortOrder,
		}})
		if err != nil {
			return nil, false, fmt.Errorf("reactivate category: %w", err)
		}
		return c, true, nil
	case !errors.Is(err, core.ErrNotFound):
		return nil, false, err
	}

	now := s.now().UTC()
	c := &Category{
		Collection:  req.Collection,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		IsActive:    true,
		SortOrder:   req.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, false, ErrCategoryExists
		}
		return nil, false, err
	}
	return c, false, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Category, error) {
	set := bson.M{}
	if req.Collection != nil {
		set["collection"] = *req.Collection
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Subcategory != nil {
		set["subcategory"] = *req.Subcategory
	}
	if req.SortOrder != nil {
		set["sortOrder"] = *req.SortOrder
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if len(set) == 0 {
		return s.repo.GetByID(ctx, id)
	}

	c, err := s.repo.Update(ctx, id, store.Update{Set: set})
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, ErrCategoryExists
	}
	return c, err
}

// Delete is soft: the category is only marked inactive.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Deactivate(ctx, id)
	return err
}

func (s *Service) StatusCounts(ctx context.Context) (map[string]int64, error) {
	active, err := s.repo.Count(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	inactive, err := s.repo.Count(ctx, bson.M{"isActive": false})
	if err != nil {
		return nil, err
	}
	return map[string]int64{"active": active, "inactive": inactive}, nil
}
