package users

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/objstore"
	"github.com/google/uuid"
)

type userObject struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash"`
	KDFSalt      []byte    `json:"kdf_salt"`
	CreatedAt    time.Time `json:"created_at"`
}

// S3Repository keeps one object per account, keyed by a hash of the email
// so that the key is fixed-length and uniqueness comes from If-None-Match.
type S3Repository struct {
	store *objstore.Store
}

func NewS3Repository(store *objstore.Store) *S3Repository {
	return &S3Repository{store: store}
}

func emailKey(email string) string {
	sum := sha256.Sum256([]byte(email))
	return "users/email/" + hex.EncodeToString(sum[:]) + ".json"
}

func (r *S3Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err := r.store.PutJSON(ctx, emailKey(user.Email), userObject{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		KDFSalt:      user.KDFSalt,
		CreatedAt:    user.CreatedAt,
	}, objstore.IfAbsent())
	if err != nil {
		if errors.Is(err, objstore.ErrPreconditionFailed) {
			return nil, common.ErrAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

func (r *S3Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var obj userObject
	if _, err := r.store.GetJSON(ctx, emailKey(email), &obj); err != nil {
		return nil, err
	}

	return &models.User{
		ID:           obj.ID,
		Email:        obj.Email,
		PasswordHash: obj.PasswordHash,
		KDFSalt:      obj.KDFSalt,
		CreatedAt:    obj.CreatedAt,
	}, nil
}
