// Package users persists accounts. Every backend reports a taken email as
// common.ErrAlreadyExists and a missing account as common.ErrNotFound.
package users

import (
	"context"

	"github.com/dmitrijs2005/zkvault/internal/server/models"
)

type Repository interface {
	// Create stores user, assigning an ID and CreatedAt when unset.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByEmail looks up by the normalized email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
