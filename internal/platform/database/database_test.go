package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Client_NotReady(t *testing.T) {
	testCases := []struct {
		name   string
		client *Client
	}{
		{name: "nil client", client: nil},
		{name: "zero client", client: &Client{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			coll, err := tc.client.Collection("products")
			pingErr := tc.client.Ping(context.Background())
			closeErr := tc.client.Close(context.Background())

			// then
			assert.Nil(t, coll)
			assert.ErrorIs(t, err, ErrNotReady)
			assert.ErrorIs(t, pingErr, ErrNotReady)
			require.NoError(t, closeErr, "closing an unconnected client is a no-op")
		})
	}
}
