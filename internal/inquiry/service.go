// AngelaMos | 2026
// service.go

package inquiry

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

type Service struct {
	kind Kind
	repo Repository
	now  func() time.Time
}

func NewService(kind Kind, repo Repository) *Service {
	return &Service{kind: kind, repo: repo, now: time.Now}
}

func (s *Service) Kind() Kind {
	return s.kind
}

// Submit stores a new inquiry as pending.
func (s *Service) Submit(ctx context.Context, inq *Inquiry) (*Inquiry, error) {
	now := s.now().UTC()
	inq.Status = StatusPending
	inq.CreatedAt = now
	inq.UpdatedAt = now

	if err := s.repo.Insert(ctx, inq); err != nil {
		return nil, fmt.Errorf("submit %s inquiry: %w", s.kind.Name, err)
	}
	return inq, nil
}

func (s *Service) Filter(p ListParams) bson.M {
	filter := bson.M{}
	if p.Status != "" {
		filter["status"] = p.Status
	}
	if s.kind.FilterCategory && p.Category != "" {
		filter["category"] = p.Category
	}
	if or := store.SearchAny(p.Search, s.kind.SearchFields...); or != nil {
		filter["$or"] = or
	}
	return filter
}

func (s *Service) List(
	ctx context.Context,
	p ListParams,
	page store.Pagination,
) (*store.Page[Inquiry], error) {
	return s.repo.List(ctx, store.Query{Filter: s.Filter(p), Pagination: page})
}

// Export returns every inquiry matching p, newest first.
func (s *Service) Export(ctx context.Context, p ListParams) ([]Inquiry, error) {
	return s.repo.All(ctx, s.Filter(p))
}

func (s *Service) Get(ctx context.Context, id string) (*Inquiry, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus sets the status and, only when given, the admin notes.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id string,
	req UpdateStatusRequest,
) (*Inquiry, error) {
	set := bson.M{"status": req.Status}
	if req.AdminNotes != nil {
		set["adminNotes"] = *req.AdminNotes
	}
	return s.repo.Update(ctx, id, store.Update{Set: set})
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Inquiry, error) {
	set := bson.M{}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.AdminNotes != nil {
		set["adminNotes"] = *req.AdminNotes
	}
	if len(set) == 0 {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, store.Update{Set: set})
}

// BulkUpdateStatus is not atomic across documents. Unknown and malformed
// ids are skipped and the count covers only documents actually changed.
func (s *Service) BulkUpdateStatus(
	ctx context.Context,
	ids []string,
	status Status,
) (int64, error) {
	return s.repo.UpdateMany(ctx, ids, store.Update{Set: bson.M{"status": status}})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// StatusCounts reports every status, including those with no inquiries.
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

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	counts, err := s.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	resp := &StatsResponse{ByStatus: counts}
	for _, n := range counts {
		resp.Total += n
	}
	return resp, nil
}
