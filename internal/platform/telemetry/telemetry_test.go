package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewMeterProvider_ServesRecordedMetrics(t *testing.T) {
	// given
	mp, handler, err := NewMeterProvider("product-test")
	require.NoError(t, err)
	defer func() { _ = mp.Shutdown(context.Background()) }()
	counter, err := mp.Meter("test").Int64Counter("products_created")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)
	rr := httptest.NewRecorder()
	// when
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "products_created")
}
