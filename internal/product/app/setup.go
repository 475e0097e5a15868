// Package app contains the application setup for the product service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chetanpal14/web-application-assignment/internal/config"
	"github.com/chetanpal14/web-application-assignment/internal/platform/database"
	"github.com/chetanpal14/web-application-assignment/internal/platform/messaging"
	"github.com/chetanpal14/web-application-assignment/internal/platform/server"
	"github.com/chetanpal14/web-application-assignment/internal/product/handler"
	"github.com/chetanpal14/web-application-assignment/internal/product/service"
	"github.com/chetanpal14/web-application-assignment/internal/product/store"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// HealthService is the name reported by the gRPC health service.
const HealthService = "product"

// Store is a ProductStore that can also be pinged for health checks.
type Store interface {
	store.ProductStore
	server.Pinger
}

type Dependencies struct {
	ProductService service.ProductService
	Store          Store
	Logger         *slog.Logger
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

// SetupDependencies wires the service on top of the store and publisher.
func SetupDependencies(productStore Store, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService: service.NewService(productStore, publisher, logger),
		Store:          productStore,
		Logger:         logger,
	}
}

// NewStore opens the store selected by database.driver.
// The returned close function releases the connection.
func NewStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (Store, func(context.Context) error, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory product store, data is lost on restart")
		return store.NewInMemoryStore(), func(context.Context) error { return nil }, nil
	case config.DriverMongo:
		conn, err := database.Connect(ctx, cfg.URI, cfg.Name, cfg.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		logger.Info("Successfully connected to the database!", "database", cfg.Name, "collection", cfg.Collection)
		return store.NewMongoStore(conn, cfg.Collection), conn.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// SetupHttpHandler initializes the router and routes for the product service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, corsCfg config.CORSConfig) http.Handler {
	mux := server.NewChiRouter(deps.Logger, server.CORSConfig{
		AllowedOrigins: corsCfg.AllowedOrigins,
		MaxAge:         corsCfg.MaxAge,
	})
	wireRoutes(mux, deps)
	return otelhttp.NewHandler(mux, "product-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// wireRoutes sets up the HTTP routes for the product service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := handler.NewHandler(deps.ProductService, deps.Store, deps.Logger)
	productHandler.RegisterRoutes(mux)
	if deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures an HTTP server for the product service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg.CORS)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// SetupGrpcServer initializes the gRPC server, which exposes the health service.
func SetupGrpcServer(hs *health.Server, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(reflectionEnabled, server.WithHealth(hs))
}
