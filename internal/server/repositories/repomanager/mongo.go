package repomanager

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/server/repositories/records"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepositoryManager serves a single MongoDB database.
type MongoRepositoryManager struct {
	client  *mongo.Client
	users   *users.MongoRepository
	records *records.MongoRepository
}

func NewMongoRepositoryManager(client *mongo.Client, db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		client:  client,
		users:   users.NewMongoRepository(db),
		records: records.NewMongoRepository(db),
	}
}

func (m *MongoRepositoryManager) Users() users.Repository     { return m.users }
func (m *MongoRepositoryManager) Records() records.Repository { return m.records }

func (m *MongoRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return fn(ctx, m)
}

// RunMigrations creates the indexes; MongoDB has no schema to migrate.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	return errors.Join(
		m.users.EnsureIndexes(ctx),
		m.records.EnsureIndexes(ctx),
	)
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
