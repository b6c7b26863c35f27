package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/dbx"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/google/uuid"
)

// SQLRepository implements record storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return NewSQLRepository(db, dbx.Postgres)
}

func (r *SQLRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = rec.CreatedAt

	query := `
		INSERT INTO records (id, owner_id, ciphertext, nonce, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		rec.ID, rec.OwnerID, rec.Ciphertext, rec.Nonce, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Record, error) {
	query := `
		SELECT id, owner_id, ciphertext, nonce, created_at, updated_at FROM records
		WHERE owner_id = $1
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Record, 0)
	for rows.Next() {
		var item models.Record
		var createdAt, updatedAt dbx.Timestamp
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Ciphertext, &item.Nonce, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.CreatedAt = createdAt.Time
		item.UpdatedAt = updatedAt.Time
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) Update(ctx context.Context, rec *models.Record) (*models.Record, error) {
	rec.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE records SET ciphertext = $1, nonce = $2, updated_at = $3
		WHERE id = $4 AND owner_id = $5
		RETURNING created_at`

	var createdAt dbx.Timestamp
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		rec.Ciphertext, rec.Nonce, rec.UpdatedAt, rec.ID, rec.OwnerID).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.CreatedAt = createdAt.Time

	return rec, nil
}

func (r *SQLRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM records WHERE id = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
