// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Filter builds the catalogue query. Anonymous callers only ever see
// active products; admins may filter on any status.
func (s *Service) Filter(p ListParams, admin bool) bson.M {
	filter := bson.M{}

	switch {
	case !admin:
		filter["status"] = StatusActive
	case p.Status != "":
		filter["status"] = p.Status
	}

	if p.Collection != "" {
		filter["collection"] = p.Collection
	}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	if p.Subcategory != "" {
		filter["subcategory"] = p.Subcategory
	}
	if p.Featured != nil {
		filter["featured"] = *p.Featured
	}
	if p.InStock != nil {
		filter["inStock"] = *p.InStock
	}

	price := bson.M{}
	if p.MinPrice != nil {
		price["$gte"] = *p.MinPrice
	}
	if p.MaxPrice != nil {
		price["$lte"] = *p.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if p.Search != "" {
		filter["$text"] = bson.M{"$search": p.Search}
	}

	return filter
}

func (s *Service) List(
	ctx context.Context,
	p ListParams,
	admin bool,
	page store.Pagination,
) (*store.Page[Product], error) {
	return s.repo.List(ctx, store.Query{Filter: s.Filter(p, admin), Pagination: page})
}

// Get hides non-active products from anonymous callers.
func (s *Service) Get(ctx context.Context, id string, admin bool) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && p.Status != StatusActive {
		return nil, core.ErrNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	now := s.now().UTC()

	p := &Product{
		Name:            req.Name,
		Description:     req.Description,
		Price:           *req.Price,
		OriginalPrice:   req.OriginalPrice,
		Collection:      req.Collection,
		Category:        req.Category,
		Subcategory:     req.Subcategory,
		Images:          req.Images,
		Features:        req.Features,
		Specifications:  req.Specifications,
		Status:          req.Status,
		Featured:        req.Featured,
		InStock:         true,
		StockQuantity:   req.StockQuantity,
		MinimumQuantity: req.MinimumQuantity,
		Tags:            req.Tags,
		SEO:             req.SEO.toSEO(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}
	if p.MinimumQuantity == 0 {
		p.MinimumQuantity = 1
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// updateSet maps the non-nil fields of req onto their stored names.
func updateSet(req UpdateRequest) bson.M {
	set := bson.M{}

	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		set["originalPrice"] = *req.OriginalPrice
	}
	if req.Collection != nil {
		set["collection"] = *req.Collection
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Subcategory != nil {
		set["subcategory"] = *req.Subcategory
	}
	if req.Images != nil {
		set["images"] = *req.Images
	}
	if req.Features != nil {
		set["features"] = *req.Features
	}
	if req.Specifications != nil {
		set["specifications"] = *req.Specifications
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}
	if req.InStock != nil {
		set["inStock"] = *req.InStock
	}
	if req.StockQuantity != nil {
		set["stockQuantity"] = *req.StockQuantity
	}
	if req.MinimumQuantity != nil {
		set["minimumQuantity"] = *req.MinimumQuantity
	}
	if req.Tags != nil {
		set["tags"] = normalizeTags(*req.Tags)
	}
	if req.SEO != nil {
		set["seo"] = req.SEO.toSEO()
	}

	return set
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Product, error) {
	set := updateSet(req)
	if len(set) == 0 {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, store.Update{Set: set})
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Product, error) {
	return s.repo.Update(ctx, id, store.Update{Set: bson.M{"status": status}})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) StatusCounts(ctx context.Context) (map[string]int64, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(Statuses))
	for _, st := range Statuses {
		out[string(st)] = counts[string(st)]
	}
	return out, nil
}
