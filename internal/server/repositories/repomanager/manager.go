// Package repomanager vends the repositories for one storage backend and
// owns the backend's lifecycle: connecting, migrating and closing.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/zkvault/internal/server/repositories/records"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/users"
)

// Repositories is a consistent pair of repositories. Inside WithTx they
// are bound to the transaction.
type Repositories interface {
	Users() users.Repository
	Records() records.Repository
}

type RepositoryManager interface {
	Repositories

	// WithTx runs fn as one unit of work. SQL backends wrap it in a
	// transaction; document stores run it directly and rely on their
	// own uniqueness guards.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
