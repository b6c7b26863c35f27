// Package records persists encrypted vault records. The owner is part of
// every lookup: a record that exists but belongs to someone else is
// reported exactly like a missing one, as common.ErrNotFound.
package records

import (
	"context"

	"github.com/dmitrijs2005/zkvault/internal/server/models"
)

type Repository interface {
	// Create stores rec, assigning ID and timestamps when unset.
	Create(ctx context.Context, rec *models.Record) (*models.Record, error)
	// ListByOwner returns the owner's records, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Record, error)
	// Update replaces ciphertext and nonce of the record matching both
	// rec.ID and rec.OwnerID.
	Update(ctx context.Context, rec *models.Record) (*models.Record, error)
	// Delete removes the record matching both ownerID and id.
	Delete(ctx context.Context, ownerID, id string) error
}
