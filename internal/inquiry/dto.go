// AngelaMos | 2026
// dto.go

package inquiry

import (
	"strings"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
)

// submission is a public form body. normalize runs before validation.
type submission interface {
	normalize()
	inquiry() *Inquiry
}

type ProductSubmitRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Email       string `json:"email"       validate:"required,email"`
	Phone       string `json:"phone"       validate:"required,phone"`
	Company     string `json:"company"     validate:"omitempty,max=100"`
	ProductName string `json:"productName" validate:"required,max=200"`
	ProductCode string `json:"productCode" validate:"required,max=100"`
	Category    string `json:"category"    validate:"required,max=100"`
	Subcategory string `json:"subcategory" validate:"omitempty,max=100"`
	Quantity    int    `json:"quantity"    validate:"required,min=1,max=10000"`
	Message     string `json:"message"     validate:"required,max=2000"`
}

func (r *ProductSubmitRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = core.NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.ProductCode = strings.TrimSpace(r.ProductCode)
	r.Category = strings.TrimSpace(r.Category)
	r.Subcategory = strings.TrimSpace(r.Subcategory)
	r.Message = strings.TrimSpace(r.Message)
}

func (r *ProductSubmitRequest) inquiry() *Inquiry {
	return &Inquiry{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Company:     r.Company,
		ProductName: r.ProductName,
		ProductCode: r.ProductCode,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Quantity:    r.Quantity,
		Message:     r.Message,
	}
}

type NormalSubmitRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"required,phone"`
	Company string `json:"company" validate:"omitempty,max=100"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (r *NormalSubmitRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = core.NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func (r *NormalSubmitRequest) inquiry() *Inquiry {
	return &Inquiry{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Subject: r.Subject,
		Message: r.Message,
	}
}

type SubmitResponse struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

type UpdateStatusRequest struct {
	Status     Status  `json:"status"     validate:"required,oneof=pending processing completed cancelled"`
	AdminNotes *string `json:"adminNotes" validate:"omitempty,max=2000"`
}

// UpdateRequest leaves absent fields untouched.
type UpdateRequest struct {
	Status     *Status `json:"status"     validate:"omitempty,oneof=pending processing completed cancelled"`
	AdminNotes *string `json:"adminNotes" validate:"omitempty,max=2000"`
}

type BulkUpdateRequest struct {
	IDs    []string `json:"ids"    validate:"required,min=1,max=500"`
	Status Status   `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

type BulkUpdateResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

type StatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

// ListParams are the admin list filters. Empty fields do not filter.
type ListParams struct {
	Status   string
	Category string
	Search   string
}
