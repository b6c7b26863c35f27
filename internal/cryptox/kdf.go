// Package cryptox holds the client-side cryptography of the vault: deriving
// a key from the master secret and sealing records into AEAD envelopes.
// Nothing in this package talks to the network or to storage.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// KeyLen is the size of every derived key in bytes (AES-256).
const KeyLen = 32

// KeyAlgorithm tags the cipher a DerivedKey is meant for.
const KeyAlgorithm = "AES-256-GCM"

// MinPBKDF2Iterations is the lowest work factor DeriveWithParams accepts.
const MinPBKDF2Iterations = 100_000

// KDF names a password-based key derivation function.
type KDF string

const (
	KDFPBKDF2SHA256 KDF = "pbkdf2-sha256"
	KDFArgon2id     KDF = "argon2id"
)

// KDFParams selects the derivation function and its cost.
// Iterations is the PBKDF2 round count or the Argon2 time parameter.
// Memory (KiB) and Threads are used by Argon2id only.
type KDFParams struct {
	Algorithm  KDF    `json:"algorithm"`
	Iterations uint32 `json:"iterations"`
	Memory     uint32 `json:"memory,omitempty"`
	Threads    uint8  `json:"threads,omitempty"`
}

// DefaultKDFParams returns PBKDF2-HMAC-SHA256 with 600k iterations.
func DefaultKDFParams() KDFParams {
	return KDFParams{Algorithm: KDFPBKDF2SHA256, Iterations: 600_000}
}

// Argon2idKDFParams returns the memory-hard alternative.
func Argon2idKDFParams() KDFParams {
	return KDFParams{Algorithm: KDFArgon2id, Iterations: 3, Memory: 64 * 1024, Threads: 4}
}

func (p KDFParams) validate() error {
	switch p.Algorithm {
	case KDFPBKDF2SHA256:
		if p.Iterations < MinPBKDF2Iterations {
			return fmt.Errorf("pbkdf2 iterations %d below %d", p.Iterations, MinPBKDF2Iterations)
		}
	case KDFArgon2id:
		if p.Iterations == 0 || p.Memory == 0 || p.Threads == 0 {
			return errors.New("argon2id time, memory and threads must be positive")
		}
	default:
		return fmt.Errorf("unknown kdf %q", p.Algorithm)
	}
	return nil
}

// DerivedKey is symmetric key material bound to one unlocked session.
// It cannot be serialized and should be destroyed on lock or logout.
type DerivedKey struct {
	key []byte
}

// Derive turns a master secret and a per-account salt into a key using
// DefaultKDFParams. It is deterministic: a returning user re-derives the
// same key from the same inputs, so the key itself is never stored.
//
// The salt must be unique per account but need not be secret. When the
// normalized email is used as salt (see EmailSalt), renaming the account
// silently yields a different key and previously sealed records can no
// longer be opened.
//
// Empty secrets are not rejected here; refusing them is caller policy.
func Derive(masterSecret string, salt []byte) (*DerivedKey, error) {
	return DeriveWithParams(masterSecret, salt, DefaultKDFParams())
}

// DeriveWithParams is Derive with an explicit function and cost.
func DeriveWithParams(masterSecret string, salt []byte, p KDFParams) (*DerivedKey, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDerivationFailed, err)
	}

	var key []byte
	switch p.Algorithm {
	case KDFArgon2id:
		key = argon2.IDKey([]byte(masterSecret), salt, p.Iterations, p.Memory, p.Threads, KeyLen)
	default:
		key = pbkdf2.Key([]byte(masterSecret), salt, int(p.Iterations), KeyLen, sha256.New)
	}
	if len(key) != KeyLen {
		return nil, common.ErrDerivationFailed
	}
	return &DerivedKey{key: key}, nil
}

// EmailSalt returns the legacy salt: the normalized account email.
func EmailSalt(email string) []byte {
	return []byte(common.NormalizeEmail(email))
}

// Algorithm reports the cipher this key is for.
func (k *DerivedKey) Algorithm() string { return KeyAlgorithm }

// Len is the key length in bytes, zero once destroyed.
func (k *DerivedKey) Len() int {
	if k == nil {
		return 0
	}
	return len(k.key)
}

// Destroyed reports whether the key can no longer be used.
func (k *DerivedKey) Destroyed() bool {
	return k == nil || k.key == nil
}

// Destroy zeroes the key material. Safe to call more than once.
func (k *DerivedKey) Destroy() {
	if k == nil {
		return
	}
	common.WipeByteArray(k.key)
	k.key = nil
}

// Equal compares two keys in constant time.
func (k *DerivedKey) Equal(other *DerivedKey) bool {
	if k.Destroyed() || other.Destroyed() {
		return false
	}
	return subtle.ConstantTimeCompare(k.key, other.key) == 1
}

var errNotExportable = errors.New("derived key is not exportable")

func (k *DerivedKey) String() string   { return "DerivedKey(" + KeyAlgorithm + ", redacted)" }
func (k *DerivedKey) GoString() string { return k.String() }

// MarshalJSON always fails so the key cannot leak through encoding/json.
func (k *DerivedKey) MarshalJSON() ([]byte, error) { return nil, errNotExportable }

// MarshalText always fails for the same reason.
func (k *DerivedKey) MarshalText() ([]byte, error) { return nil, errNotExportable }
