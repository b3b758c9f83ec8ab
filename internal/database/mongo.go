package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/xyz-asif/kubertodo/pkg/errors"
)

// Config holds what is needed to reach the store.
type Config struct {
	URI     string
	DBName  string
	Timeout time.Duration
}

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect builds the process-wide client. The driver dials lazily, so an
// unreachable server does not fail here; callers find out through Ping.
func Connect(ctx context.Context, cfg Config) (*MongoDB, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout).
		SetConnectTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.DBName),
	}, nil
}

// Ping issues the liveness command against the database.
func (m *MongoDB) Ping(ctx context.Context) error {
	return Ping(ctx, m.Database)
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

type pingReply struct {
	Ok float64 `bson:"ok"`
}

// Ping runs {ping: 1} and requires an explicit ok >= 1 in the reply.
func Ping(ctx context.Context, db *mongo.Database) error {
	var reply pingReply
	if err := db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Decode(&reply); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	if reply.Ok < 1 {
		return fmt.Errorf("%w: ok=%v", apperrors.ErrUnhealthy, reply.Ok)
	}
	return nil
}
