// AngelaMos | 2026
// dto.go

package category

import "strings"

type CreateRequest struct {
	Collection  string `json:"collection"  validate:"required,collection"`
	Category    string `json:"category"    validate:"required,max=100"`
	Subcategory string `json:"subcategory" validate:"omitempty,max=100"`
	SortOrder   int    `json:"sortOrder"   validate:"gte=0"`
}

func (r *CreateRequest) normalize() {
	r.Category = strings.TrimSpace(r.Category)
	r.Subcategory = strings.TrimSpace(r.Subcategory)
}

type UpdateRequest struct {
	Collection  *string `json:"collection"  validate:"omitempty,collection"`
	Category    *string `json:"category"    validate:"omitempty,min=1,max=100"`
	Subcategory *string `json:"subcategory" validate:"omitempty,max=100"`
	SortOrder   *int    `json:"sortOrder"   validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive"`
}

type AdminListParams struct {
	Collection string
	Active     *bool
	Search     string
}
