package records

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/objstore"
	"github.com/google/uuid"
)

// maxUpdateAttempts bounds the read-modify-write loop when a concurrent
// writer changes the object between read and conditional put.
const maxUpdateAttempts = 3

type recordObject struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Ciphertext []byte    `json:"ciphertext"`
	Nonce      []byte    `json:"nonce"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (o recordObject) model() *models.Record {
	return &models.Record{
		ID:         o.ID,
		OwnerID:    o.OwnerID,
		Ciphertext: o.Ciphertext,
		Nonce:      o.Nonce,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// S3Repository stores each record at records/<owner>/<id>.json, so a
// foreign owner simply addresses a key that does not exist.
type S3Repository struct {
	store *objstore.Store
}

func NewS3Repository(store *objstore.Store) *S3Repository {
	return &S3Repository{store: store}
}

func ownerPrefix(ownerID string) string {
	return "records/" + ownerID + "/"
}

func recordKey(ownerID, id string) string {
	return ownerPrefix(ownerID) + id + ".json"
}

func (r *S3Repository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.UpdatedAt = rec.CreatedAt

	err := r.store.PutJSON(ctx, recordKey(rec.OwnerID, rec.ID), recordObject{
		ID:         rec.ID,
		OwnerID:    rec.OwnerID,
		Ciphertext: rec.Ciphertext,
		Nonce:      rec.Nonce,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}, objstore.IfAbsent())
	if err != nil {
		if errors.Is(err, objstore.ErrPreconditionFailed) {
			return nil, common.ErrAlreadyExists
		}
		return nil, err
	}
	return rec, nil
}

func (r *S3Repository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Record, error) {
	keys, err := r.store.Keys(ctx, ownerPrefix(ownerID))
	if err != nil {
		return nil, err
	}

	result := make([]*models.Record, 0, len(keys))
	for _, key := range keys {
		var obj recordObject
		if _, err := r.store.GetJSON(ctx, key, &obj); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				// deleted between list and get
				continue
			}
			return nil, err
		}
		result = append(result, obj.model())
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *S3Repository) Update(ctx context.Context, rec *models.Record) (*models.Record, error) {
	key := recordKey(rec.OwnerID, rec.ID)

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		var cur recordObject
		etag, err := r.store.GetJSON(ctx, key, &cur)
		if err != nil {
			return nil, err
		}

		cur.Ciphertext = rec.Ciphertext
		cur.Nonce = rec.Nonce
		cur.UpdatedAt = time.Now().UTC()

		err = r.store.PutJSON(ctx, key, cur, objstore.IfMatch(etag))
		if err == nil {
			return cur.model(), nil
		}
		if !errors.Is(err, objstore.ErrPreconditionFailed) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("s3 error: record %s kept changing during update", rec.ID)
}

func (r *S3Repository) Delete(ctx context.Context, ownerID, id string) error {
	key := recordKey(ownerID, id)

	etag, err := r.store.Head(ctx, key)
	if err != nil {
		return err
	}
	if err := r.store.Delete(ctx, key, objstore.IfMatch(etag)); err != nil {
		if errors.Is(err, objstore.ErrPreconditionFailed) {
			// replaced or removed concurrently; a vanished record is not found
			if _, headErr := r.store.Head(ctx, key); errors.Is(headErr, common.ErrNotFound) {
				return common.ErrNotFound
			}
		}
		return err
	}
	return nil
}
