package repomanager

import (
	"context"

	"github.com/dmitrijs2005/zkvault/internal/server/repositories/objstore"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/records"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/users"
)

// S3RepositoryManager keeps accounts and records as JSON objects in one
// bucket.
type S3RepositoryManager struct {
	store   *objstore.Store
	users   *users.S3Repository
	records *records.S3Repository
}

func NewS3RepositoryManager(store *objstore.Store) *S3RepositoryManager {
	return &S3RepositoryManager{
		store:   store,
		users:   users.NewS3Repository(store),
		records: records.NewS3Repository(store),
	}
}

func (m *S3RepositoryManager) Users() users.Repository     { return m.users }
func (m *S3RepositoryManager) Records() records.Repository { return m.records }

func (m *S3RepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return fn(ctx, m)
}

// RunMigrations is a no-op: objects carry their own shape.
func (m *S3RepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *S3RepositoryManager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

func (m *S3RepositoryManager) Close() error { return nil }
