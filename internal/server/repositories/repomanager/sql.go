package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/zkvault/internal/dbx"
	"github.com/dmitrijs2005/zkvault/internal/server/migrations"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/records"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager serves Postgres and SQLite.
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect dbx.Dialect
}

type sqlRepositories struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func (r sqlRepositories) Users() users.Repository {
	return users.NewSQLRepository(r.db, r.dialect)
}

func (r sqlRepositories) Records() records.Repository {
	return records.NewSQLRepository(r.db, r.dialect)
}

func NewSQLRepositoryManager(db *sql.DB, dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{db: db, dialect: dialect}
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed manager.
func NewPostgresRepositoryManager(db *sql.DB) *SQLRepositoryManager {
	return NewSQLRepositoryManager(db, dbx.Postgres)
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect { return m.dialect }

func (m *SQLRepositoryManager) Users() users.Repository {
	return sqlRepositories{db: m.db, dialect: m.dialect}.Users()
}

func (m *SQLRepositoryManager) Records() records.Repository {
	return sqlRepositories{db: m.db, dialect: m.dialect}.Records()
}

func (m *SQLRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, sqlRepositories{db: tx, dialect: m.dialect})
	})
}

// migrateUp is a seam for testing.
var migrateUp = migrations.Up

func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	return migrateUp(ctx, m.db, m.dialect)
}

func (m *SQLRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}
