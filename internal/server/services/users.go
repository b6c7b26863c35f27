package services

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/server/auth"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

// KDFSaltSize is the length of the per-account key derivation salt.
const KDFSaltSize = 16

// Session is what a successful login hands back to the client.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
	KDFSalt   []byte
}

// UserService is the authentication gate: it registers accounts, trades
// a correct email and password for a session token and verifies tokens.
type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenManager
	hasher      *auth.PasswordHasher
	saltKey     []byte
	logger      logging.Logger
}

// NewUserService wires the service. saltKey keys the decoy salts GetSalt
// returns for unknown emails and must stay stable across restarts.
func NewUserService(m repomanager.RepositoryManager, tokens *auth.TokenManager, hasher *auth.PasswordHasher, saltKey []byte, logger logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		saltKey:     saltKey,
		logger:      logger.With("module", "users"),
	}
}

// Signup creates an account. The email is normalized before the
// uniqueness check, so "A@X.com" and "a@x.com" collide.
func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email = common.NormalizeEmail(email)
	if err := common.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		KDFSalt:      common.GenerateRandByteArray(KDFSaltSize),
		CreatedAt:    time.Now().UTC(),
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		_, err := repos.Users().GetByEmail(ctx, email)
		if err == nil {
			return common.ErrAlreadyExists
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
		user, err = repos.Users().Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the password and issues a session. An unknown email and a
// wrong password fail identically, and both run one bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = common.NormalizeEmail(email)

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		KDFSalt:   user.KDFSalt,
	}, nil
}

// Verify returns the account id the token was issued to.
func (s *UserService) Verify(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			s.logger.Debug(ctx, "token rejected", "reason", err.Error())
		}
		return "", err
	}
	return claims.Subject, nil
}

// Logout ends a session. Tokens are stateless, so this only records the
// event; the client is expected to drop the token and its key.
func (s *UserService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "user logged out", "user_id", claims.Subject, "token_id", claims.ID)
	return nil
}

// GetSalt returns the account's KDF salt. For an unknown email it returns
// a stable decoy derived from the email, so the answer does not reveal
// whether the account exists.
func (s *UserService) GetSalt(ctx context.Context, email string) ([]byte, error) {
	email = common.NormalizeEmail(email)

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return s.decoySalt(email)
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user.KDFSalt, nil
}

// decoySalt expands the salt key with the normalized email, so an unknown
// address always gets the same salt.
func (s *UserService) decoySalt(email string) ([]byte, error) {
	salt := make([]byte, KDFSaltSize)
	if _, err := io.ReadFull(hkdf.Expand(sha256.New, s.saltKey, []byte(email)), salt); err != nil {
		return nil, fmt.Errorf("error deriving salt: %w", err)
	}
	return salt, nil
}
