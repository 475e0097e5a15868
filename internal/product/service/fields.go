package service

import (
	"encoding/json"
	"math"

	perrors "github.com/chetanpal14/web-application-assignment/internal/product/errors"
	"github.com/chetanpal14/web-application-assignment/internal/product/store"
)

// Recognized product fields, in the order missing ones are reported.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldQuantity    = "quantity"
	FieldCategory    = "category"
)

var requiredFields = []string{FieldName, FieldDescription, FieldPrice, FieldQuantity, FieldCategory}

// productFromFields builds a product from a create request.
// Every recognized key must be present; a present key with a nil value stores the zero value.
// Unrecognized keys are dropped.
func productFromFields(fields map[string]any) (store.Product, error) {
	var missing []string
	for _, field := range requiredFields {
		if _, ok := fields[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return store.Product{}, &perrors.ValidationError{Missing: missing}
	}

	var p store.Product
	var err error
	if p.Name, err = stringValue(fields, FieldName); err != nil {
		return store.Product{}, err
	}
	if p.Description, err = stringValue(fields, FieldDescription); err != nil {
		return store.Product{}, err
	}
	if p.Price, err = numberValue(fields, FieldPrice); err != nil {
		return store.Product{}, err
	}
	if p.Quantity, err = integerValue(fields, FieldQuantity); err != nil {
		return store.Product{}, err
	}
	if p.Category, err = stringValue(fields, FieldCategory); err != nil {
		return store.Product{}, err
	}
	return p, nil
}

// patchFromFields builds a patch from an update request.
// Only recognized keys with a non-nil value are included.
func patchFromFields(fields map[string]any) (store.Patch, error) {
	var p store.Patch
	var err error
	if p.Name, err = optional(fields, FieldName, stringValue); err != nil {
		return store.Patch{}, err
	}
	if p.Description, err = optional(fields, FieldDescription, stringValue); err != nil {
		return store.Patch{}, err
	}
	if p.Price, err = optional(fields, FieldPrice, numberValue); err != nil {
		return store.Patch{}, err
	}
	if p.Quantity, err = optional(fields, FieldQuantity, integerValue); err != nil {
		return store.Patch{}, err
	}
	if p.Category, err = optional(fields, FieldCategory, stringValue); err != nil {
		return store.Patch{}, err
	}
	return p, nil
}

func optional[T any](fields map[string]any, key string, convert func(map[string]any, string) (T, error)) (*T, error) {
	if v, ok := fields[key]; !ok || v == nil {
		return nil, nil
	}
	value, err := convert(fields, key)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func stringValue(fields map[string]any, key string) (string, error) {
	switch v := fields[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", &perrors.FieldTypeError{Field: key}
	}
}

func numberValue(fields map[string]any, key string) (float64, error) {
	switch v := fields[key].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, &perrors.FieldTypeError{Field: key}
		}
		return f, nil
	default:
		return 0, &perrors.FieldTypeError{Field: key}
	}
}

// integerValue accepts integral numbers only; 2.0 is fine, 2.5 is not.
func integerValue(fields map[string]any, key string) (int64, error) {
	switch v := fields[key].(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
	}
	f, err := numberValue(fields, key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, &perrors.FieldTypeError{Field: key}
	}
	return int64(f), nil
}
