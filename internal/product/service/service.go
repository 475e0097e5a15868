// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chetanpal14/web-application-assignment/internal/platform/messaging"
	"github.com/chetanpal14/web-application-assignment/internal/platform/messaging/events"
	perrors "github.com/chetanpal14/web-application-assignment/internal/product/errors"
	"github.com/chetanpal14/web-application-assignment/internal/product/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// List returns the products whose name contains nameFilter, ignoring case.
	// An empty nameFilter returns every product. Returns an empty slice if nothing matches.
	List(ctx context.Context, nameFilter string) ([]ProductDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrInvalidID for a malformed id and ErrProductNotFound if no product exists.
	FindByID(ctx context.Context, id string) (*ProductDto, error)

	// Create adds a new product built from the five recognized fields and returns
	// the whole collection afterwards, so callers can refresh their list in one round trip.
	// Returns a *ValidationError naming every missing field.
	Create(ctx context.Context, fields map[string]any) ([]ProductDto, error)

	// Update merges the recognized, non-nil fields of patch into the product and
	// returns the product as re-read from the store.
	// Returns ErrNotUpdated if no product matched the id.
	Update(ctx context.Context, id string, patch map[string]any) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrInvalidID for a malformed id and ErrProductNotFound if nothing was removed.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAll removes every product and returns how many were removed.
	// Returns ErrNothingToDelete if the collection was already empty.
	DeleteAll(ctx context.Context) (int64, error)
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	publisher  messaging.Publisher
	logger     *slog.Logger
}

// NewService creates a new instance of ProductService with the provided repository.
// A nil publisher disables change events; a nil repository makes every call fail with ErrStoreUnavailable.
func NewService(repo store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repository: repo,
		publisher:  publisher,
		logger:     logger.With("component", "service"),
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
	Category    string  `json:"category"`
}

// List retrieves the products matching the optional name filter.
func (s *Service) List(ctx context.Context, nameFilter string) ([]ProductDto, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	products, err := s.repository.Find(ctx, store.NameContains(nameFilter))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toDtos(products), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Service) FindByID(ctx context.Context, id string) (*ProductDto, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !s.repository.IsValidID(id) {
		return nil, fmt.Errorf("%w: %s", perrors.ErrInvalidID, id)
	}
	product, err := s.repository.FindOne(ctx, store.ByID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return toDto(product), nil
}

// Create inserts a product and returns the full, updated product list.
func (s *Service) Create(ctx context.Context, fields map[string]any) ([]ProductDto, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	product, err := productFromFields(fields)
	if err != nil {
		return nil, err
	}
	res, err := s.repository.InsertOne(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	if !res.Acknowledged {
		return nil, perrors.ErrNotAcknowledged
	}
	s.publish(ctx, events.ProductEvent{Kind: events.ProductCreated, ProductID: res.InsertedID})

	products, err := s.repository.Find(ctx, store.All())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products after create: %w", err)
	}
	return toDtos(products), nil
}

// Update merges the patch into the product and returns the re-fetched document.
// A patch with no recognized keys still issues an (empty) update.
func (s *Service) Update(ctx context.Context, id string, patch map[string]any) (*ProductDto, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	p, err := patchFromFields(patch)
	if err != nil {
		return nil, err
	}
	res, err := s.repository.UpdateOne(ctx, store.ByID(id), p)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", perrors.ErrNotUpdated, id)
	}
	updated, err := s.repository.FindOne(ctx, store.ByID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product with ID %s after update: %w", id, err)
	}
	s.publish(ctx, events.ProductEvent{Kind: events.ProductUpdated, ProductID: id})
	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !s.repository.IsValidID(id) {
		return fmt.Errorf("%w: %s", perrors.ErrInvalidID, id)
	}
	res, err := s.repository.DeleteOne(ctx, store.ByID(id))
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	if res.DeletedCount != 1 {
		return perrors.ErrProductNotFound
	}
	s.publish(ctx, events.ProductEvent{Kind: events.ProductDeleted, ProductID: id})
	return nil
}

// DeleteAll deletes every product and returns the removed count.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	res, err := s.repository.DeleteMany(ctx, store.All())
	if err != nil {
		return 0, fmt.Errorf("failed to delete products: %w", err)
	}
	if res.DeletedCount == 0 {
		return 0, perrors.ErrNothingToDelete
	}
	s.publish(ctx, events.ProductEvent{Kind: events.ProductsPurged, Count: res.DeletedCount})
	return res.DeletedCount, nil
}

func (s *Service) ready() error {
	if s.repository == nil {
		return perrors.ErrStoreUnavailable
	}
	return nil
}

// publish sends a change event. Failures are logged and never fail the operation.
func (s *Service) publish(ctx context.Context, event events.ProductEvent) {
	event.OccurredAt = time.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish product event", "subject", event.Subject(), "error", err)
	}
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
	}
}

func toDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i := range products {
		dtos[i] = *toDto(&products[i])
	}
	return dtos
}
