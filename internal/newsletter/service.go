// AngelaMos | 2026
// service.go

package newsletter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

var ErrAlreadySubscribed = errors.New("email already subscribed")

var searchFields = []string{"email"}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SubscribeResult tells a fresh subscription from a reactivated one.
type SubscribeResult struct {
	Subscriber  *Subscriber
	Reactivated bool
}

// Subscribe creates the subscriber, or reactivates the existing document
// for an address that unsubscribed or bounced. An active address, or a
// concurrent insert losing the unique index race, yields
// ErrAlreadySubscribed.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscribeResult, error) {
	email := core.NormalizeEmail(req.Email)
	source := req.Source
	if source == "" {
		source = SourceWebsite
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Status == StatusActive {
			return nil, ErrAlreadySubscribed
		}
		return s.reactivate(ctx, existing, req.Tags)
	case !errors.Is(err, core.ErrNotFound):
		return nil, err
	}

	now := s.now().UTC()
	sub := &Subscriber{
		Email:        email,
		Status:       StatusActive,
		Source:       source,
		Tags:         req.Tags,
		SubscribedAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, sub); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}

	return &SubscribeResult{Subscriber: sub}, nil
}

func (s *Service) reactivate(
	ctx context.Context,
	existing *Subscriber,
	tags []string,
) (*SubscribeResult, error) {
	set := bson.M{
		"status":       StatusActive,
		"subscribedAt": s.now().UTC(),
	}
	if len(tags) > 0 {
		set["tags"] = mergeTags(existing.Tags, tags)
	}

	sub, err := s.repo.Update(ctx, existing.ID.Hex(), store.Update{
		Set:   set,
		Unset: []string{"unsubscribedAt"},
	})
	if err != nil {
		return nil, fmt.Errorf("reactivate subscriber: %w", err)
	}

	return &SubscribeResult{Subscriber: sub, Reactivated: true}, nil
}

func mergeTags(current, extra []string) []string {
	seen := make(map[string]struct{}, len(current)+len(extra))
	out := make([]string, 0, len(current)+len(extra))
	for _, t := range append(append([]string{}, current...), extra...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Unsubscribe is a no-op for an address that is not active.
func (s *Service) Unsubscribe(ctx context.Context, email string) (*Subscriber, error) {
	sub, err := s.repo.GetByEmail(ctx, core.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if sub.Status != StatusActive {
		return sub, nil
	}
	return s.repo.Update(ctx, sub.ID.Hex(), s.statusUpdate(StatusUnsubscribed))
}

// statusUpdate keeps unsubscribedAt in step with status.
func (s *Service) statusUpdate(status Status) store.Update {
	u := store.Update{Set: bson.M{"status": status}}
	switch status {
	case StatusUnsubscribed:
		u.Set["unsubscribedAt"] = s.now().UTC()
	case StatusActive:
		u.Unset = []string{"unsubscribedAt"}
	}
	return u
}

func (s *Service) Filter(p ListParams) bson.M {
	filter := bson.M{}
	if p.Status != "" {
		filter["status"] = p.Status
	}
	if p.Source != "" {
		filter["source"] = p.Source
	}
	if or := store.SearchAny(p.Search, searchFields...); or != nil {
		filter["$or"] = or
	}
	return filter
}

func (s *Service) List(
	ctx context.Context,
	p ListParams,
	page store.Pagination,
) (*store.Page[Subscriber], error) {
	return s.repo.List(ctx, store.Query{Filter: s.Filter(p), Pagination: page})
}

func (s *Service) Export(ctx context.Context, p ListParams) ([]Subscriber, error) {
	return s.repo.All(ctx, s.Filter(p))
}

func (s *Service) Get(ctx context.Context, id string) (*Subscriber, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Subscriber, error) {
	return s.repo.Update(ctx, id, s.statusUpdate(status))
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Subscriber, error) {
	u := store.Update{Set: bson.M{}}
	if req.Status != nil {
		u = s.statusUpdate(*req.Status)
	}
	if req.Tags != nil {
		u.Set["tags"] = *req.Tags
	}
	if len(u.Set) == 0 {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, u)
}

// BulkUpdateStatus applies the same unsubscribedAt rule as single
// updates. The count covers only documents actually changed.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []string, status Status) (int64, error) {
	return s.repo.UpdateMany(ctx, ids, s.statusUpdate(status))
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
