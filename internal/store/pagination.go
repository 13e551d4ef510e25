// AngelaMos | 2026
// pagination.go

package store

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPage  = 1
	MaxLimit     = 100
	DefaultSort  = "createdAt"
	SortAsc      = 1
	SortDesc     = -1
	defaultLimit = 10

	// MaxPage keeps (page-1)*limit inside int64 for any allowed limit.
	MaxPage = math.MaxInt64 / MaxLimit
)

type Pagination struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder int
}

// ParsePagination reads page, limit, sortBy and sortOrder. Out of range
// values are clamped; a sortBy outside sortable falls back to createdAt.
func ParsePagination(
	q url.Values,
	fallbackLimit int,
	sortable ...string,
) Pagination {
	if fallbackLimit <= 0 {
		fallbackLimit = defaultLimit
	}

	p := Pagination{
		Page:      atoiDefault(q.Get("page"), DefaultPage),
		Limit:     atoiDefault(q.Get("limit"), fallbackLimit),
		SortBy:    DefaultSort,
		SortOrder: SortDesc,
	}

	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = fallbackLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if sortBy := q.Get("sortBy"); sortBy != "" {
		for _, allowed := range sortable {
			if sortBy == allowed {
				p.SortBy = sortBy
				break
			}
		}
	}

	if strings.EqualFold(q.Get("sortOrder"), "asc") {
		p.SortOrder = SortAsc
	}

	return p
}

// Skip saturates instead of overflowing; a page past the end is empty.
func (p Pagination) Skip() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	pages, limit := int64(p.Page-1), int64(p.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

func (p Pagination) Sort() bson.D {
	sort := bson.D{{Key: p.SortBy, Value: p.SortOrder}}
	if p.SortBy != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: p.SortOrder})
	}
	return sort
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

func NewPage[T any](items []T, total int64, page, limit int) *Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// Map converts the items of a page, keeping its counters.
func Map[T, R any](p *Page[T], fn func(T) R) *Page[R] {
	out := make([]R, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return &Page[R]{
		Items:      out,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

// Contains builds a case-insensitive substring match. The term is quoted
// so user input never acts as a pattern.
func Contains(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// SearchAny matches term against any of fields. It returns nil for an
// empty term.
func SearchAny(term string, fields ...string) bson.A {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	rx := Contains(term)
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: rx})
	}
	return or
}

// ObjectIDs parses hex ids, dropping malformed ones.
func ObjectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		out = append(out, oid)
	}
	return out
}
