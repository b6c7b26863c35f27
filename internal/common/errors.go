// Package common defines shared constants and sentinel errors used across
// client and server layers of zkvault. Callers should use errors.Is to
// match these values, or KindOf when a switch over every kind is wanted.
package common

import "errors"

var (
	// Cryptographic errors.
	ErrDerivationFailed     = errors.New("key derivation failed")
	ErrAuthenticationFailed = errors.New("wrong password or corrupted data")
	ErrMalformedPlaintext   = errors.New("malformed plaintext")
	ErrVaultLocked          = errors.New("vault is locked")

	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Auth errors. Missing credential, bad credential and bad login
	// are kept apart so the transport can report each one precisely.
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Service-level errors.
	ErrValidation  = errors.New("validation error")
	ErrRateLimited = errors.New("too many attempts")
	ErrInternal    = errors.New("internal error")
)

// Kind is a closed classification of the errors above.
type Kind int

const (
	KindInternal Kind = iota
	KindDerivationFailed
	KindAuthenticationFailed
	KindMalformedPlaintext
	KindVaultLocked
	KindNotFound
	KindAlreadyExists
	KindUnauthorized
	KindInvalidToken
	KindInvalidCredentials
	KindValidation
	KindRateLimited
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrDerivationFailed, KindDerivationFailed},
	{ErrAuthenticationFailed, KindAuthenticationFailed},
	{ErrMalformedPlaintext, KindMalformedPlaintext},
	{ErrVaultLocked, KindVaultLocked},
	{ErrNotFound, KindNotFound},
	{ErrAlreadyExists, KindAlreadyExists},
	{ErrUnauthorized, KindUnauthorized},
	{ErrInvalidToken, KindInvalidToken},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrValidation, KindValidation},
	{ErrRateLimited, KindRateLimited},
}

// KindOf maps err to its Kind. Unknown and nil-wrapped errors are KindInternal,
// so callers must check err != nil first.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// Retryable reports whether repeating the same call may succeed.
// Policy errors need different input; only internal failures are transient.
func (k Kind) Retryable() bool {
	return k == KindInternal
}

func (k Kind) String() string {
	switch k {
	case KindDerivationFailed:
		return "derivation_failed"
	case KindAuthenticationFailed:
		return "authentication_failed"
	case KindMalformedPlaintext:
		return "malformed_plaintext"
	case KindVaultLocked:
		return "vault_locked"
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidToken:
		return "invalid_token"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}
