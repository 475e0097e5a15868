package store

import (
	"context"

	perrors "github.com/chetanpal14/web-application-assignment/internal/product/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStoreSuite holds the behaviour every ProductStore implementation must share.
// Implementations plug in the store and a reset hook that empties it before each test.
type ProductStoreSuite struct {
	suite.Suite
	store ProductStore
	reset func()
	ctx   context.Context
}

// SetupTest empties the store before each test.
func (s *ProductStoreSuite) SetupTest() {
	if s.reset != nil {
		s.reset()
	}
}

// insert is a helper that stores a product and returns it with its assigned ID.
func (s *ProductStoreSuite) insert(name string, price float64) Product {
	s.T().Helper()
	p := Product{Name: name, Description: name + " description", Price: price, Quantity: 3, Category: "Women"}
	res, err := s.store.InsertOne(s.ctx, p)
	require.NoError(s.T(), err, "insert helper failed to create product")
	require.True(s.T(), res.Acknowledged)
	require.True(s.T(), s.store.IsValidID(res.InsertedID), "store must assign a valid ID")
	p.ID = res.InsertedID
	return p
}

func (s *ProductStoreSuite) TestInsertAndFindOne() {
	created := s.insert("Blue Dress", 59.99)

	fetched, err := s.store.FindOne(s.ctx, ByID(created.ID))

	require.NoError(s.T(), err)
	assert.Equal(s.T(), created, *fetched)
}

func (s *ProductStoreSuite) TestFindOne_NotFound() {
	_, err := s.store.FindOne(s.ctx, ByID(primitive.NewObjectID().Hex()))

	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *ProductStoreSuite) TestFindOne_MalformedID() {
	_, err := s.store.FindOne(s.ctx, ByID("not-an-id"))

	require.ErrorIs(s.T(), err, perrors.ErrInvalidID)
}

func (s *ProductStoreSuite) TestFind_All() {
	a := s.insert("Dress", 10)
	b := s.insert("SHIRT", 20)

	products, err := s.store.Find(s.ctx, All())

	require.NoError(s.T(), err)
	assert.ElementsMatch(s.T(), []Product{a, b}, products)
}

func (s *ProductStoreSuite) TestFind_Empty() {
	products, err := s.store.Find(s.ctx, All())

	require.NoError(s.T(), err)
	assert.NotNil(s.T(), products)
	assert.Empty(s.T(), products)
}

func (s *ProductStoreSuite) TestFind_NameContains() {
	dress := s.insert("Dress", 10)
	summer := s.insert("Summer dREss", 15)
	s.insert("SHIRT", 20)
	dotted := s.insert("v1.2 Jacket", 30)

	testCases := []struct {
		name     string
		text     string
		expected []Product
	}{
		{name: "case-insensitive substring", text: "dre", expected: []Product{dress, summer}},
		{name: "upper-case filter", text: "DRESS", expected: []Product{dress, summer}},
		{name: "regex metacharacters are literal", text: "1.2", expected: []Product{dotted}},
		{name: "no match", text: "hat", expected: []Product{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			products, err := s.store.Find(s.ctx, NameContains(tc.text))

			require.NoError(s.T(), err)
			assert.ElementsMatch(s.T(), tc.expected, products)
		})
	}
}

func (s *ProductStoreSuite) TestUpdateOne_Partial() {
	created := s.insert("Green Dress", 40)
	price := 99.0

	res, err := s.store.UpdateOne(s.ctx, ByID(created.ID), Patch{Price: &price})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), res.MatchedCount)
	assert.Equal(s.T(), int64(1), res.ModifiedCount)

	updated, err := s.store.FindOne(s.ctx, ByID(created.ID))
	require.NoError(s.T(), err)
	expected := created
	expected.Price = 99
	assert.Equal(s.T(), expected, *updated)
}

func (s *ProductStoreSuite) TestUpdateOne_EmptyPatch() {
	created := s.insert("Red Dress", 40)

	res, err := s.store.UpdateOne(s.ctx, ByID(created.ID), Patch{})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), res.MatchedCount)
	assert.Equal(s.T(), int64(0), res.ModifiedCount)
}

func (s *ProductStoreSuite) TestUpdateOne_NoMatch() {
	name := "Ghost"
	res, err := s.store.UpdateOne(s.ctx, ByID(primitive.NewObjectID().Hex()), Patch{Name: &name})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), res.MatchedCount)
}

func (s *ProductStoreSuite) TestDeleteOne() {
	created := s.insert("Scarf", 12)

	first, err := s.store.DeleteOne(s.ctx, ByID(created.ID))
	require.NoError(s.T(), err)
	second, err := s.store.DeleteOne(s.ctx, ByID(created.ID))
	require.NoError(s.T(), err)

	assert.Equal(s.T(), int64(1), first.DeletedCount)
	assert.Equal(s.T(), int64(0), second.DeletedCount)
	_, err = s.store.FindOne(s.ctx, ByID(created.ID))
	assert.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *ProductStoreSuite) TestDeleteMany() {
	s.insert("A", 1)
	s.insert("B", 2)
	s.insert("C", 3)

	first, err := s.store.DeleteMany(s.ctx, All())
	require.NoError(s.T(), err)
	second, err := s.store.DeleteMany(s.ctx, All())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), int64(3), first.DeletedCount)
	assert.Equal(s.T(), int64(0), second.DeletedCount)
	products, err := s.store.Find(s.ctx, All())
	require.NoError(s.T(), err)
	assert.Empty(s.T(), products)
}
