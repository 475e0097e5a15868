package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chetanpal14/web-application-assignment/internal/product/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryStore implements ProductStore using an in-memory map.
// IDs are generated as ObjectIDs so identifier validation matches the MongoDB store.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[string]Product
	order    []string
}

// NewInMemoryStore creates a new, empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products: make(map[string]Product),
	}
}

// IsValidID reports whether id is a 24 character hex ObjectID.
func (s *InMemoryStore) IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Ping always succeeds.
func (s *InMemoryStore) Ping(_ context.Context) error {
	return nil
}

// Find returns the products matching the filter in insertion order.
func (s *InMemoryStore) Find(_ context.Context, filter Filter) ([]Product, error) {
	if err := s.checkFilter(filter); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		if p := s.products[id]; matches(p, filter) {
			list = append(list, p)
		}
	}
	return list, nil
}

// FindOne returns the first product matching the filter.
func (s *InMemoryStore) FindOne(_ context.Context, filter Filter) (*Product, error) {
	if err := s.checkFilter(filter); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.first(filter)
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	p := s.products[id]
	return &p, nil
}

// InsertOne stores the product under a freshly generated ID.
func (s *InMemoryStore) InsertOne(_ context.Context, product Product) (InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = primitive.NewObjectID().Hex()
	s.products[product.ID] = product
	s.order = append(s.order, product.ID)

	return InsertResult{InsertedID: product.ID, Acknowledged: true}, nil
}

// UpdateOne merges the patch into the first product matching the filter.
func (s *InMemoryStore) UpdateOne(_ context.Context, filter Filter, patch Patch) (UpdateResult, error) {
	if err := s.checkFilter(filter); err != nil {
		return UpdateResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.first(filter)
	if !ok {
		return UpdateResult{}, nil
	}
	before := s.products[id]
	after := applyPatch(before, patch)
	s.products[id] = after

	result := UpdateResult{MatchedCount: 1}
	if after != before {
		result.ModifiedCount = 1
	}
	return result, nil
}

// DeleteOne removes the first product matching the filter.
func (s *InMemoryStore) DeleteOne(_ context.Context, filter Filter) (DeleteResult, error) {
	if err := s.checkFilter(filter); err != nil {
		return DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.first(filter)
	if !ok {
		return DeleteResult{}, nil
	}
	s.remove(id)
	return DeleteResult{DeletedCount: 1}, nil
}

// DeleteMany removes every product matching the filter.
func (s *InMemoryStore) DeleteMany(_ context.Context, filter Filter) (DeleteResult, error) {
	if err := s.checkFilter(filter); err != nil {
		return DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var doomed []string
	for _, id := range s.order {
		if matches(s.products[id], filter) {
			doomed = append(doomed, id)
		}
	}
	for _, id := range doomed {
		s.remove(id)
	}
	return DeleteResult{DeletedCount: int64(len(doomed))}, nil
}

// checkFilter rejects ID filters that are not ObjectIDs, as the MongoDB store does.
func (s *InMemoryStore) checkFilter(filter Filter) error {
	if filter.ID != "" && !s.IsValidID(filter.ID) {
		return fmt.Errorf("%w: %s", errors.ErrInvalidID, filter.ID)
	}
	return nil
}

// first returns the ID of the first product matching the filter. Caller holds the lock.
func (s *InMemoryStore) first(filter Filter) (string, bool) {
	if filter.ID != "" {
		p, ok := s.products[filter.ID]
		if !ok || !matches(p, filter) {
			return "", false
		}
		return p.ID, true
	}
	for _, id := range s.order {
		if matches(s.products[id], filter) {
			return id, true
		}
	}
	return "", false
}

// remove deletes the product and its position. Caller holds the write lock.
func (s *InMemoryStore) remove(id string) {
	delete(s.products, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func matches(p Product, filter Filter) bool {
	if filter.ID != "" && p.ID != filter.ID {
		return false
	}
	if filter.NameContains != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.NameContains)) {
		return false
	}
	return true
}

func applyPatch(p Product, patch Patch) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	return p
}
