package db

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Availability reports whether the document store can serve requests.
type Availability interface {
	Available() bool
}

// Mongo wraps the client and database. A zero Mongo (no URI configured)
// reports itself unavailable and has a nil Database.
type Mongo struct {
	Client    *mongo.Client
	Database  *mongo.Database
	available atomic.Bool
}

// ConnectMongoDB connects and pings the server. An empty uri is not an error:
// the process keeps serving and the store is reported unavailable.
func ConnectMongoDB(ctx context.Context, uri, dbName string) (*Mongo, error) {
	m := &Mongo{}
	if uri == "" {
		log.Warn("MONGO_URI not set, serving without persistence")
		return m, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connection failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	m.Client = client
	m.Database = client.Database(dbName)
	m.available.Store(true)

	log.Infow("Connected to MongoDB", "database", dbName)
	return m, nil
}

func (m *Mongo) Available() bool {
	return m.available.Load()
}

// Ping refreshes the availability flag.
func (m *Mongo) Ping(ctx context.Context) error {
	if m.Client == nil {
		return fmt.Errorf("mongodb not configured")
	}
	err := m.Client.Ping(ctx, nil)
	m.available.Store(err == nil)
	return err
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	m.available.Store(false)
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the application relies on.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	if m.Database == nil {
		return nil
	}

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "active", Value: 1}}},
		},
		"companies": {
			{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"jobs": {
			{Keys: bson.D{{Key: "company", Value: 1}}},
		},
		"applications": {
			{Keys: bson.D{{Key: "job", Value: 1}, {Key: "applicant", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "applicant", Value: 1}}},
		},
		"evaluations": {
			{Keys: bson.D{{Key: "evaluated", Value: 1}}},
			{Keys: bson.D{{Key: "course", Value: 1}}},
		},
		"courses": {
			{Keys: bson.D{{Key: "professional", Value: 1}}},
		},
		"messages": {
			{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "recipient", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := m.Database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}

	return nil
}
