package events

import (
	"encoding/json"
	"time"

	"github.com/chetanpal14/web-application-assignment/internal/platform/messaging"
)

// Product event kinds, used as the last subject token.
const (
	ProductCreated = "created"
	ProductUpdated = "updated"
	ProductDeleted = "deleted"
	ProductsPurged = "purged"
)

// ProductEvent announces a successful write to the products collection.
type ProductEvent struct {
	Kind       string    `json:"kind"`
	ProductID  string    `json:"product_id,omitempty"`
	Count      int64     `json:"count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e ProductEvent) Subject() string {
	return messaging.ProductsSubjectPrefix + "." + e.Kind
}

func (e ProductEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
