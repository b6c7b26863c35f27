package client

import (
	"context"

	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	GetSalt(ctx context.Context, email string) ([]byte, error)
	ListRecords(ctx context.Context) ([]*models.StoredRecord, error)
	AddRecord(ctx context.Context, env cryptox.Envelope) (*models.StoredRecord, error)
	UpdateRecord(ctx context.Context, id string, env cryptox.Envelope) (*models.StoredRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	// LoggedIn reports whether a session token is held.
	LoggedIn() bool
}
