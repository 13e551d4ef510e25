// AngelaMos | 2026
// entity.go

package product

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDraft    Status = "draft"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusDraft}

type SEO struct {
	MetaTitle       string   `bson:"metaTitle,omitempty"       json:"metaTitle,omitempty"`
	MetaDescription string   `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	Keywords        []string `bson:"keywords,omitempty"        json:"keywords,omitempty"`
}

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"           json:"id"`
	Name            string             `bson:"name"                    json:"name"`
	Description     string             `bson:"description"             json:"description"`
	Price           float64            `bson:"price"                   json:"price"`
	OriginalPrice   *float64           `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Collection      string             `bson:"collection"              json:"collection"`
	Category        string             `bson:"category"                json:"category"`
	Subcategory     string             `bson:"subcategory,omitempty"   json:"subcategory,omitempty"`
	Images          []string           `bson:"images"                  json:"images"`
	Features        []string           `bson:"features,omitempty"      json:"features"`
	Specifications  map[string]string  `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Status          Status             `bson:"status"                  json:"status"`
	Featured        bool               `bson:"featured"                json:"featured"`
	InStock         bool               `bson:"inStock"                 json:"inStock"`
	StockQuantity   int                `bson:"stockQuantity"           json:"stockQuantity"`
	MinimumQuantity int                `bson:"minimumQuantity"         json:"minimumQuantity"`
	Tags            []string           `bson:"tags,omitempty"          json:"tags"`
	SEO             *SEO               `bson:"seo,omitempty"           json:"seo,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"               json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"               json:"updatedAt"`
}

var pricePrinter = message.NewPrinter(language.English)

// FormattedPrice renders the price in rupees with thousands separators.
func (p *Product) FormattedPrice() string {
	return pricePrinter.Sprintf("₹%.2f", p.Price)
}

// DiscountPercentage is the rounded saving against OriginalPrice, or 0
// when there is none.
func (p *Product) DiscountPercentage() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100))
}
