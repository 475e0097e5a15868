package app

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chetanpal14/web-application-assignment/internal/config"
	"github.com/chetanpal14/web-application-assignment/internal/product/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func Test_NewStore(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("memory driver", func(t *testing.T) {
		// when
		s, closeFn, err := NewStore(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory}, logger)
		// then
		require.NoError(t, err)
		assert.IsType(t, &store.InMemoryStore{}, s)
		assert.NoError(t, closeFn(context.Background()))
	})

	t.Run("unknown driver", func(t *testing.T) {
		// when
		_, _, err := NewStore(context.Background(), config.DatabaseConfig{Driver: "sqlite"}, logger)
		// then
		assert.ErrorContains(t, err, "unsupported database driver")
	})
}

func Test_SetupHttpHandler_Metrics(t *testing.T) {
	// given
	deps := SetupDependencies(store.NewInMemoryStore(), nil, slog.New(slog.DiscardHandler))
	deps.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})
	h := SetupHttpHandler(deps, config.CORSConfig{AllowedOrigins: []string{"*"}})
	rr := httptest.NewRecorder()
	// when
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "metrics", rr.Body.String())
}

func Test_SetupHttpHandler_NilStore(t *testing.T) {
	// given
	deps := SetupDependencies(nil, nil, slog.New(slog.DiscardHandler))
	h := SetupHttpHandler(deps, config.CORSConfig{})
	rr := httptest.NewRecorder()
	// when
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	// then
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
}

func Test_SetupGrpcServer(t *testing.T) {
	// given
	hs := health.NewServer()
	// when
	srv := SetupGrpcServer(hs, false)
	defer srv.Stop()
	// then
	assert.Contains(t, srv.GetServiceInfo(), healthpb.Health_ServiceDesc.ServiceName)
}
