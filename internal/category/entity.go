// AngelaMos | 2026
// entity.go

package category

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is one (collection, category, subcategory) entry of the
// catalogue tree. Subcategory is stored even when empty so the unique
// index covers top-level categories too. Deleting only clears IsActive.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Collection  string             `bson:"collection"    json:"collection"`
	Category    string             `bson:"category"      json:"category"`
	Subcategory string             `bson:"subcategory"   json:"subcategory,omitempty"`
	IsActive    bool               `bson:"isActive"      json:"isActive"`
	SortOrder   int                `bson:"sortOrder"     json:"sortOrder"`
	CreatedAt   time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

type CategoryNode struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

type CollectionNode struct {
	Collection string         `json:"collection"`
	Categories []CategoryNode `json:"categories"`
}
