package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// RecordService is owner-scoped CRUD over opaque envelopes. It never
// decrypts; the only checks are on envelope shape and ownership.
type RecordService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewRecordService(m repomanager.RepositoryManager, logger logging.Logger) *RecordService {
	return &RecordService{repomanager: m, logger: logger.With("module", "records")}
}

// ValidateEnvelope checks sizes only: a 96-bit nonce and at least a tag's
// worth of ciphertext.
func ValidateEnvelope(env cryptox.Envelope) error {
	if len(env.Nonce) != cryptox.NonceSize {
		return fmt.Errorf("%w: nonce must be %d bytes", common.ErrValidation, cryptox.NonceSize)
	}
	if len(env.Ciphertext) < cryptox.TagSize {
		return fmt.Errorf("%w: ciphertext shorter than authentication tag", common.ErrValidation)
	}
	return nil
}

func checkOwner(ownerID string) error {
	if ownerID == "" {
		return common.ErrUnauthorized
	}
	return nil
}

// canonicalRecordID accepts only the hyphenated 36-character uuid form,
// in either case, and returns it lowercased as the stores keep it. Other
// forms uuid.Parse accepts (urn:uuid:, braces, bare hex) and malformed ids
// are not-found, so they look the same as missing ids to the caller.
func canonicalRecordID(id string) (string, error) {
	id = strings.ToLower(id)
	u, err := uuid.Parse(id)
	if err != nil || u.String() != id {
		return "", common.ErrNotFound
	}
	return id, nil
}

func (s *RecordService) List(ctx context.Context, ownerID string) ([]*models.Record, error) {
	if err := checkOwner(ownerID); err != nil {
		return nil, err
	}

	list, err := s.repomanager.Records().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	return list, nil
}

// Add stores a new record owned by ownerID. The id is assigned here.
func (s *RecordService) Add(ctx context.Context, ownerID string, env cryptox.Envelope) (*models.Record, error) {
	if err := checkOwner(ownerID); err != nil {
		return nil, err
	}
	if err := ValidateEnvelope(env); err != nil {
		return nil, err
	}

	rec, err := s.repomanager.Records().Create(ctx, &models.Record{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Ciphertext: env.Ciphertext,
		Nonce:      env.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating record: %w", err)
	}

	s.logger.Info(ctx, "record added", "owner_id", ownerID, "record_id", rec.ID)
	return rec, nil
}

// Update replaces the envelope of one of ownerID's records. Someone
// else's record is reported as not found and left untouched.
func (s *RecordService) Update(ctx context.Context, ownerID, recordID string, env cryptox.Envelope) (*models.Record, error) {
	if err := checkOwner(ownerID); err != nil {
		return nil, err
	}
	if err := ValidateEnvelope(env); err != nil {
		return nil, err
	}
	recordID, err := canonicalRecordID(recordID)
	if err != nil {
		return nil, err
	}

	rec, err := s.repomanager.Records().Update(ctx, &models.Record{
		ID:         recordID,
		OwnerID:    ownerID,
		Ciphertext: env.Ciphertext,
		Nonce:      env.Nonce,
	})
	if err != nil {
		if common.KindOf(err) == common.KindNotFound {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error updating record: %w", err)
	}

	s.logger.Info(ctx, "record updated", "owner_id", ownerID, "record_id", recordID)
	return rec, nil
}

func (s *RecordService) Delete(ctx context.Context, ownerID, recordID string) error {
	if err := checkOwner(ownerID); err != nil {
		return err
	}
	recordID, err := canonicalRecordID(recordID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Records().Delete(ctx, ownerID, recordID); err != nil {
		if common.KindOf(err) == common.KindNotFound {
			return common.ErrNotFound
		}
		return fmt.Errorf("error deleting record: %w", err)
	}

	s.logger.Info(ctx, "record deleted", "owner_id", ownerID, "record_id", recordID)
	return nil
}
