// Package services contains application services for the zkvault client.
// This file defines the authentication service: signup, login, unlocking
// the vault key and logout.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/client/config"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup: create an account on the server.
//   - Login: open a session and return the salt to derive the vault key with.
//   - Salt: look up that salt again without logging in, for unlock.
//   - Unlock: derive the vault key from the master secret and salt.
//   - Logout: end the session on the server and drop the token.
//   - Ping, Close: liveness and resource release.
type AuthService interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) ([]byte, error)
	Salt(ctx context.Context, email string) ([]byte, error)
	Unlock(masterSecret string, salt []byte) (*cryptox.DerivedKey, error)
	Logout(ctx context.Context) error
	LoggedIn() bool
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client     client.Client
	saltSource string
	derive     func(secret string, salt []byte) (*cryptox.DerivedKey, error)
}

// NewAuthService constructs an AuthService. saltSource is one of
// config.SaltSourceAccount or config.SaltSourceEmail.
func NewAuthService(client client.Client, saltSource string) AuthService {
	return &authService{client: client, saltSource: saltSource, derive: cryptox.Derive}
}

func (a *authService) Signup(ctx context.Context, email, password string) error {
	if err := a.client.Signup(ctx, email, password); err != nil {
		return fmt.Errorf("signup error: %w", err)
	}
	return nil
}

// Login authenticates and returns the salt for Unlock.
func (a *authService) Login(ctx context.Context, email, password string) ([]byte, error) {
	sess, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if a.saltSource == config.SaltSourceEmail {
		return cryptox.EmailSalt(email), nil
	}
	return sess.KDFSalt, nil
}

func (a *authService) Salt(ctx context.Context, email string) ([]byte, error) {
	if a.saltSource == config.SaltSourceEmail {
		return cryptox.EmailSalt(email), nil
	}
	salt, err := a.client.GetSalt(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get salt error: %w", err)
	}
	return salt, nil
}

// Unlock refuses an empty secret or salt; anything else derives a key.
// A wrong secret is only detected when the first record fails to open.
func (a *authService) Unlock(masterSecret string, salt []byte) (*cryptox.DerivedKey, error) {
	if masterSecret == "" {
		return nil, fmt.Errorf("%w: master secret is empty", common.ErrValidation)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: salt is empty", common.ErrValidation)
	}
	return a.derive(masterSecret, salt)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.client.Logout(ctx)
}

func (a *authService) LoggedIn() bool {
	return a.client.LoggedIn()
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
