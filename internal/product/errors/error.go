// Package errors provides custom error types for product-related operations.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidID = errors.New("invalid product ID")

// ErrNotAcknowledged is returned when the store does not acknowledge an insert.
var ErrNotAcknowledged = errors.New("insert not acknowledged")

// ErrNotUpdated is returned when an update matched no document.
var ErrNotUpdated = errors.New("no product matched the update")

// ErrNothingToDelete is returned when a bulk delete removed zero documents.
var ErrNothingToDelete = errors.New("no products found to delete")

// ErrStoreUnavailable is returned by every operation of a service that was built without a store.
var ErrStoreUnavailable = errors.New("product store unavailable")

// ValidationError lists the required fields missing from a create request.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Missing fields: " + strings.Join(e.Missing, ", ")
}

// FieldTypeError reports a recognized field supplied with an unusable value.
type FieldTypeError struct {
	Field string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("Invalid field type: %s", e.Field)
}
