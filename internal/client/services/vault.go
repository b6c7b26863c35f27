package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"golang.org/x/sync/errgroup"
)

// VaultService encrypts on the way out and decrypts on the way in. The
// server only ever receives envelopes.
type VaultService interface {
	List(ctx context.Context, key *cryptox.DerivedKey) ([]*models.Item, error)
	Get(ctx context.Context, key *cryptox.DerivedKey, id string) (*models.Item, error)
	Add(ctx context.Context, key *cryptox.DerivedKey, rec cryptox.Record) (*models.Item, error)
	Update(ctx context.Context, key *cryptox.DerivedKey, id string, rec cryptox.Record) (*models.Item, error)
	Delete(ctx context.Context, id string) error
}

type vaultService struct {
	client  client.Client
	workers int
}

func NewVaultService(client client.Client) VaultService {
	return &vaultService{client: client, workers: 8}
}

func checkKey(key *cryptox.DerivedKey) error {
	if key == nil || key.Destroyed() {
		return common.ErrVaultLocked
	}
	return nil
}

// List fetches every record and opens them in parallel. One record that
// fails to open fails the whole call.
func (s *vaultService) List(ctx context.Context, key *cryptox.DerivedKey) ([]*models.Item, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	stored, err := s.client.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list error: %w", err)
	}

	items := make([]*models.Item, len(stored))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, r := range stored {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := open(r, key)
			if err != nil {
				return fmt.Errorf("record %s: %w", r.ID, err)
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *vaultService) Get(ctx context.Context, key *cryptox.DerivedKey, id string) (*models.Item, error) {
	items, err := s.List(ctx, key)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *vaultService) Add(ctx context.Context, key *cryptox.DerivedKey, rec cryptox.Record) (*models.Item, error) {
	env, err := seal(rec, key)
	if err != nil {
		return nil, err
	}
	stored, err := s.client.AddRecord(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("add error: %w", err)
	}
	return &models.Item{ID: stored.ID, Record: rec, CreatedAt: stored.CreatedAt, UpdatedAt: stored.UpdatedAt}, nil
}

func (s *vaultService) Update(ctx context.Context, key *cryptox.DerivedKey, id string, rec cryptox.Record) (*models.Item, error) {
	env, err := seal(rec, key)
	if err != nil {
		return nil, err
	}
	stored, err := s.client.UpdateRecord(ctx, id, env)
	if err != nil {
		return nil, fmt.Errorf("update error: %w", err)
	}
	return &models.Item{ID: stored.ID, Record: rec, CreatedAt: stored.CreatedAt, UpdatedAt: stored.UpdatedAt}, nil
}

func (s *vaultService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}

func seal(rec cryptox.Record, key *cryptox.DerivedKey) (cryptox.Envelope, error) {
	if err := checkKey(key); err != nil {
		return cryptox.Envelope{}, err
	}
	env, err := cryptox.Encrypt(rec, key)
	if err != nil {
		return cryptox.Envelope{}, fmt.Errorf("encryption error: %w", err)
	}
	return env, nil
}

func open(r *models.StoredRecord, key *cryptox.DerivedKey) (*models.Item, error) {
	rec, err := cryptox.Decrypt(r.Envelope, key)
	if err != nil {
		return nil, err
	}
	return &models.Item{ID: r.ID, Record: rec, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}, nil
}
