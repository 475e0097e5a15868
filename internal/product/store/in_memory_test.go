package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestInMemoryStore(t *testing.T) {
	s := &ProductStoreSuite{ctx: context.Background()}
	s.reset = func() { s.store = NewInMemoryStore() }
	suite.Run(t, s)
}

func Test_InMemoryStore_FindPreservesInsertionOrder(t *testing.T) {
	// given
	st := NewInMemoryStore()
	ctx := context.Background()
	for _, name := range []string{"first", "second", "third"} {
		_, err := st.InsertOne(ctx, Product{Name: name})
		require.NoError(t, err)
	}

	// when
	products, err := st.Find(ctx, All())

	// then
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "first", products[0].Name)
	assert.Equal(t, "second", products[1].Name)
	assert.Equal(t, "third", products[2].Name)
}

func Test_InMemoryStore_InsertIgnoresCallerID(t *testing.T) {
	// given
	st := NewInMemoryStore()

	// when
	res, err := st.InsertOne(context.Background(), Product{ID: "caller-chosen", Name: "Hat"})

	// then
	require.NoError(t, err)
	assert.NotEqual(t, "caller-chosen", res.InsertedID)
	assert.True(t, st.IsValidID(res.InsertedID))
}
