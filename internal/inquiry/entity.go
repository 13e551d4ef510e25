// AngelaMos | 2026
// entity.go

package inquiry

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every inquiry status. Any status may follow any other.
var Statuses = []Status{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}

// Inquiry is either a product inquiry or a general one; the product fields
// are empty on general inquiries and Subject is empty on product ones.
// Each kind lives in its own collection.
type Inquiry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"         json:"id"`
	Name        string             `bson:"name"                  json:"name"`
	Email       string             `bson:"email"                 json:"email"`
	Phone       string             `bson:"phone"                 json:"phone"`
	Company     string             `bson:"company,omitempty"     json:"company,omitempty"`
	ProductName string             `bson:"productName,omitempty" json:"productName,omitempty"`
	ProductCode string             `bson:"productCode,omitempty" json:"productCode,omitempty"`
	Category    string             `bson:"category,omitempty"    json:"category,omitempty"`
	Subcategory string             `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Quantity    int                `bson:"quantity,omitempty"    json:"quantity,omitempty"`
	Subject     string             `bson:"subject,omitempty"     json:"subject,omitempty"`
	Message     string             `bson:"message"               json:"message"`
	Status      Status             `bson:"status"                json:"status"`
	AdminNotes  string             `bson:"adminNotes,omitempty"  json:"adminNotes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"             json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"             json:"updatedAt"`
}
