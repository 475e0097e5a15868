package store

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/chetanpal14/web-application-assignment/internal/platform/database"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
)

const skipIntegrationTests = "PRODUCT_SKIP_INTEGRATION_TESTS"

const testCollection = "products"

// MongoStoreSuite runs the shared ProductStore behaviour against a real MongoDB.
type MongoStoreSuite struct {
	ProductStoreSuite
	container *mongodb.MongoDBContainer // MongoDB container for integration tests
	conn      *database.Client          // connection shared by the suite
	logger    *slog.Logger
}

// SetupSuite starts a MongoDB container and connects the store to it.
func (s *MongoStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var err error
	// 1. Start a MongoDB container
	s.container, err = mongodb.Run(s.ctx, "mongo:7.0")
	require.NoError(s.T(), err, "Failed to run MongoDB container")

	// 2. Get the connection string from the container
	uri, err := s.container.ConnectionString(s.ctx)
	require.NoError(s.T(), err, "Failed to get connection string from container")

	// 3. Connect and ping
	s.conn, err = database.Connect(s.ctx, uri, "marketplace_test", 30*time.Second)
	require.NoError(s.T(), err, "Failed to connect to MongoDB")

	s.store = NewMongoStore(s.conn, testCollection)
	s.reset = func() {
		coll, err := s.conn.Collection(testCollection)
		require.NoError(s.T(), err)
		_, err = coll.DeleteMany(s.ctx, bson.M{})
		require.NoError(s.T(), err, "Failed to empty products collection")
	}
	s.logger.Info("Initialization complete for MongoStoreSuite")
}

// TearDownSuite disconnects and terminates the container.
func (s *MongoStoreSuite) TearDownSuite() {
	if s.conn != nil {
		if err := s.conn.Close(s.ctx); err != nil {
			s.logger.Warn("failed to close MongoDB connection", "error", err)
		}
	}
	if s.container != nil {
		if err := s.container.Terminate(s.ctx); err != nil {
			s.logger.Warn("failed to terminate MongoDB container", "error", err)
		}
	}
}

// TestMongoStoreIntegration runs the ProductStore integration tests.
func TestMongoStoreIntegration(t *testing.T) {
	if testing.Short() || os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(MongoStoreSuite))
}
