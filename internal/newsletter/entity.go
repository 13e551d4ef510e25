// AngelaMos | 2026
// entity.go

package newsletter

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusActive       Status = "active"
	StatusUnsubscribed Status = "unsubscribed"
	StatusBounced      Status = "bounced"
)

var Statuses = []Status{StatusActive, StatusUnsubscribed, StatusBounced}

const (
	SourceWebsite = "website"
	SourceAdmin   = "admin"
	SourceImport  = "import"
)

// Subscriber is unique by lower-cased email. UnsubscribedAt is stamped on
// every move to unsubscribed and cleared on reactivation.
type Subscriber struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"            json:"id"`
	Email          string             `bson:"email"                    json:"email"`
	Status         Status             `bson:"status"                   json:"status"`
	Source         string             `bson:"source"                   json:"source"`
	Tags           []string           `bson:"tags,omitempty"           json:"tags"`
	SubscribedAt   time.Time          `bson:"subscribedAt"             json:"subscribedAt"`
	UnsubscribedAt *time.Time         `bson:"unsubscribedAt,omitempty" json:"unsubscribedAt"`
	CreatedAt      time.Time          `bson:"createdAt"                json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"                json:"updatedAt"`
}
