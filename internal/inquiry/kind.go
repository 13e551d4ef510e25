// AngelaMos | 2026
// kind.go

package inquiry

import (
	"strconv"

	"github.com/keyurm111/eloska-luxe-showcase/internal/export"
	"github.com/keyurm111/eloska-luxe-showcase/internal/notify"
)

// Kind holds everything that differs between product and general
// inquiries: where they are stored, how they are searched and exported.
type Kind struct {
	Name           string
	Path           string
	Collection     string
	Resource       string
	SearchFields   []string
	FilterCategory bool
	Columns        []export.Column[Inquiry]
	Event          notify.Kind
	newSubmission  func() submission
}

var commonColumnsHead = []export.Column[Inquiry]{
	{Header: "Name", Value: func(i Inquiry) string { return i.Name }},
	{Header: "Email", Value: func(i Inquiry) string { return i.Email }},
	{Header: "Phone", Value: func(i Inquiry) string { return i.Phone }},
	{Header: "Company", Value: func(i Inquiry) string { return i.Company }},
}

var commonColumnsTail = []export.Column[Inquiry]{
	{Header: "Message", Value: func(i Inquiry) string { return i.Message }},
	{Header: "Status", Value: func(i Inquiry) string { return string(i.Status) }},
	{Header: "Admin Notes", Value: func(i Inquiry) string { return i.AdminNotes }},
	{Header: "Created At", Value: func(i Inquiry) string { return export.Time(i.CreatedAt) }},
}

func columns(middle ...export.Column[Inquiry]) []export.Column[Inquiry] {
	out := make([]export.Column[Inquiry], 0, len(commonColumnsHead)+len(middle)+len(commonColumnsTail))
	out = append(out, commonColumnsHead...)
	out = append(out, middle...)
	return append(out, commonColumnsTail...)
}

var ProductKind = Kind{
	Name:       "product",
	Path:       "/product-inquiries",
	Collection: "productinquiries",
	Resource:   "Product inquiry",
	SearchFields: []string{
		"name", "email", "phone", "company", "productName", "productCode",
	},
	FilterCategory: true,
	Columns: columns(
		export.Column[Inquiry]{Header: "Product Name", Value: func(i Inquiry) string { return i.ProductName }},
		export.Column[Inquiry]{Header: "Product Code", Value: func(i Inquiry) string { return i.ProductCode }},
		export.Column[Inquiry]{Header: "Category", Value: func(i Inquiry) string { return i.Category }},
		export.Column[Inquiry]{Header: "Subcategory", Value: func(i Inquiry) string { return i.Subcategory }},
		export.Column[Inquiry]{Header: "Quantity", Value: func(i Inquiry) string { return strconv.Itoa(i.Quantity) }},
	),
	Event:         notify.KindProductInquiry,
	newSubmission: func() submission { return &ProductSubmitRequest{} },
}

var NormalKind = Kind{
	Name:       "normal",
	Path:       "/normal-inquiries",
	Collection: "normalinquiries",
	Resource:   "Inquiry",
	SearchFields: []string{
		"name", "email", "phone", "company", "subject",
	},
	Columns: columns(
		export.Column[Inquiry]{Header: "Subject", Value: func(i Inquiry) string { return i.Subject }},
	),
	Event:         notify.KindNormalInquiry,
	newSubmission: func() submission { return &NormalSubmitRequest{} },
}

// ExportName is the file name stem for CSV downloads.
func (k Kind) ExportName() string {
	return k.Path[1:]
}
