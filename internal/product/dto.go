// AngelaMos | 2026
// dto.go

package product

import (
	"strings"
)

type SEOInput struct {
	MetaTitle       string   `json:"metaTitle"       validate:"omitempty,max=70"`
	MetaDescription string   `json:"metaDescription" validate:"omitempty,max=160"`
	Keywords        []string `json:"keywords"        validate:"omitempty,max=20,dive,max=50"`
}

func (s *SEOInput) toSEO() *SEO {
	if s == nil {
		return nil
	}
	return &SEO{
		MetaTitle:       strings.TrimSpace(s.MetaTitle),
		MetaDescription: strings.TrimSpace(s.MetaDescription),
		Keywords:        s.Keywords,
	}
}

type CreateRequest struct {
	Name            string            `json:"name"            validate:"required,max=200"`
	Description     string            `json:"description"     validate:"required,max=5000"`
	Price           *float64          `json:"price"           validate:"required,gte=0"`
	OriginalPrice   *float64          `json:"originalPrice"   validate:"omitempty,gte=0"`
	Collection      string            `json:"collection"      validate:"required,collection"`
	Category        string            `json:"category"        validate:"required,max=100"`
	Subcategory     string            `json:"subcategory"     validate:"omitempty,max=100"`
	Images          []string          `json:"images"          validate:"required,min=1,max=20,dive,required,uri"`
	Features        []string          `json:"features"        validate:"omitempty,max=50,dive,max=500"`
	Specifications  map[string]string `json:"specifications"  validate:"omitempty,max=50"`
	Status          Status            `json:"status"          validate:"omitempty,oneof=active inactive draft"`
	Featured        bool              `json:"featured"`
	InStock         *bool             `json:"inStock"`
	StockQuantity   int               `json:"stockQuantity"   validate:"gte=0"`
	MinimumQuantity int               `json:"minimumQuantity" validate:"omitempty,min=1"`
	Tags            []string          `json:"tags"            validate:"omitempty,max=30,dive,max=50"`
	SEO             *SEOInput         `json:"seo"`
}

func (r *CreateRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Subcategory = strings.TrimSpace(r.Subcategory)
	r.Tags = normalizeTags(r.Tags)
}

// UpdateRequest is a partial update; nil fields are left as stored.
type UpdateRequest struct {
	Name            *string            `json:"name"            validate:"omitempty,min=1,max=200"`
	Description     *string            `json:"description"     validate:"omitempty,min=1,max=5000"`
	Price           *float64           `json:"price"           validate:"omitempty,gte=0"`
	OriginalPrice   *float64           `json:"originalPrice"   validate:"omitempty,gte=0"`
	Collection      *string            `json:"collection"      validate:"omitempty,collection"`
	Category        *string            `json:"category"        validate:"omitempty,min=1,max=100"`
	Subcategory     *string            `json:"subcategory"     validate:"omitempty,max=100"`
	Images          *[]string          `json:"images"          validate:"omitempty,min=1,max=20,dive,required,uri"`
	Features        *[]string          `json:"features"        validate:"omitempty,max=50,dive,max=500"`
	Specifications  *map[string]string `json:"specifications"  validate:"omitempty,max=50"`
	Status          *Status            `json:"status"          validate:"omitempty,oneof=active inactive draft"`
	Featured        *bool              `json:"featured"`
	InStock         *bool              `json:"inStock"`
	StockQuantity   *int               `json:"stockQuantity"   validate:"omitempty,gte=0"`
	MinimumQuantity *int               `json:"minimumQuantity" validate:"omitempty,min=1"`
	Tags            *[]string          `json:"tags"            validate:"omitempty,max=30,dive,max=50"`
	SEO             *SEOInput          `json:"seo"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=active inactive draft"`
}

// Response adds the derived price fields.
type Response struct {
	*Product
	FormattedPrice     string `json:"formattedPrice"`
	DiscountPercentage int    `json:"discountPercentage"`
}

func ToResponse(p *Product) Response {
	return Response{
		Product:            p,
		FormattedPrice:     p.FormattedPrice(),
		DiscountPercentage: p.DiscountPercentage(),
	}
}

// ListParams are the catalogue filters. Nil pointers do not filter.
type ListParams struct {
	Collection  string
	Category    string
	Subcategory string
	Status      string
	Search      string
	Featured    *bool
	InStock     *bool
	MinPrice    *float64
	MaxPrice    *float64
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
