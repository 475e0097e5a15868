// Package store provides an interface for product storage operations.
package store

import (
	"context"
)

// ProductStore is an interface for document store operations on the products collection.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, MongoDB).
type ProductStore interface {
	// IsValidID reports whether id is well-formed for the store's identifier encoding.
	IsValidID(id string) bool

	// Find returns every product matching the filter.
	// Returns an empty slice if nothing matches.
	Find(ctx context.Context, filter Filter) ([]Product, error)

	// FindOne returns the first product matching the filter.
	// Returns ErrProductNotFound if nothing matches.
	FindOne(ctx context.Context, filter Filter) (*Product, error)

	// InsertOne adds a new product; the store assigns the ID.
	InsertOne(ctx context.Context, product Product) (InsertResult, error)

	// UpdateOne merges the patch into the first product matching the filter.
	UpdateOne(ctx context.Context, filter Filter, patch Patch) (UpdateResult, error)

	// DeleteOne removes at most one product matching the filter.
	DeleteOne(ctx context.Context, filter Filter) (DeleteResult, error)

	// DeleteMany removes every product matching the filter.
	DeleteMany(ctx context.Context, filter Filter) (DeleteResult, error)
}

// Product represents a product document in the store.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int64
	Category    string
}

// Patch holds the fields to merge on update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int64
	Category    *string
}

// IsEmpty reports whether the patch sets no field.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Quantity == nil && p.Category == nil
}

// Filter describes which products match. The zero value matches every product.
type Filter struct {
	// ID matches a single product by identifier.
	ID string
	// NameContains matches names containing the text, case-insensitively.
	NameContains string
}

// All returns a filter matching every product.
func All() Filter {
	return Filter{}
}

// ByID returns a filter matching the product with the given identifier.
func ByID(id string) Filter {
	return Filter{ID: id}
}

// NameContains returns a filter matching names that contain text, ignoring case.
// An empty text matches every product.
func NameContains(text string) Filter {
	return Filter{NameContains: text}
}

type InsertResult struct {
	InsertedID   string
	Acknowledged bool
}

type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

type DeleteResult struct {
	DeletedCount int64
}
