package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_NewHTTPServer(t *testing.T) {
	// given
	cfg := HTTPConfig{Port: 8080, MaxHeaderBytes: 1024, ReadTimeout: time.Second, WriteTimeout: 2 * time.Second, IdleTimeout: 3 * time.Second, ReadHeader: 4 * time.Second}
	// when
	srv := NewHTTPServer(cfg, http.NotFoundHandler())
	// then
	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, 1024, srv.MaxHeaderBytes)
	assert.Equal(t, 4*time.Second, srv.ReadHeaderTimeout)
}

func Test_NewChiRouter_CORSPreflight(t *testing.T) {
	// given
	router := NewChiRouter(slog.New(slog.DiscardHandler), CORSConfig{AllowedOrigins: []string{"*"}})
	router.Get("/api/products", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	// when
	router.ServeHTTP(rr, req)
	// then
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}
