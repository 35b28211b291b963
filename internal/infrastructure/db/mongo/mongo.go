// Package mongo holds the MongoDB adapters: the connection helper and the
// user and request repositories backing the directory and the lifecycle.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// defaultTimeout bounds every repository operation and, absent an explicit
// Config.Timeout, the initial connect.
const defaultTimeout = 10 * time.Second

// Config carries the connection settings for the request-system database.
type Config struct {
	URI      string
	Database string
	// Timeout bounds the connect and the verification ping. Zero means
	// defaultTimeout.
	Timeout time.Duration
}

// Connect dials MongoDB and verifies the connection with a primary ping
// before handing back the client and the configured database. The caller
// owns the client and must Disconnect it on shutdown.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
