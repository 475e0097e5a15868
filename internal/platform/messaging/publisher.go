// Package messaging defines the event publishing contract used by the product service.
package messaging

import (
	"context"
)

const (
	ProductsSubjectPrefix = "products"
	ProductsSubjectAll    = ProductsSubjectPrefix + ".>"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
