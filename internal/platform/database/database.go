// Package database provides MongoDB connection management.
package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

// Client is the process-wide handle on a MongoDB database.
// It is established once at startup and shared read-only by every request.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	closed atomic.Bool
}

// Connect dials MongoDB and pings the primary within connectTimeout.
// It fails if the server cannot be reached, so a missing store is a startup error.
func Connect(ctx context.Context, uri, dbName string, connectTimeout time.Duration) (*Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Collection returns the named collection, or ErrNotReady when the client is not connected.
func (c *Client) Collection(name string) (*mongo.Collection, error) {
	if !c.ready() {
		return nil, ErrNotReady
	}
	return c.db.Collection(name), nil
}

// Ping checks that the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if !c.ready() {
		return ErrNotReady
	}
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB. Subsequent calls to Collection return ErrNotReady.
func (c *Client) Close(ctx context.Context) error {
	if !c.ready() || !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.client.Disconnect(ctx)
}

func (c *Client) ready() bool {
	return c != nil && c.client != nil && c.db != nil && !c.closed.Load()
}
