package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/zkvault/internal/common"
)

const (
	// NonceSize is the AES-GCM nonce length (96 bits).
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag length.
	TagSize = 16
)

// Record is the plaintext credential sealed inside an envelope.
type Record struct {
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Envelope is the persisted form of a Record. Ciphertext includes the tag.
type Envelope struct {
	Ciphertext []byte
	Nonce      []byte
}

// wireRecord mirrors Record with pointers so absent fields are detectable.
type wireRecord struct {
	Site     *string `json:"site"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Encrypt serializes rec to canonical JSON and seals it with AES-256-GCM
// under key. Every call draws a fresh random nonce; the nonce is never
// supplied by the caller.
func Encrypt(rec Record, key *DerivedKey) (Envelope, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return Envelope{}, err
	}

	plaintext, err := encodeRecord(rec)
	if err != nil {
		return Envelope{}, err
	}
	defer common.WipeByteArray(plaintext)

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return Envelope{}, fmt.Errorf("nonce: %w", err)
	}

	return Envelope{
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
		Nonce:      nonce,
	}, nil
}

// Decrypt opens env with key and decodes the record.
//
// A wrong key, a corrupted or truncated envelope and deliberate tampering
// all fail tag verification and are reported as the same
// common.ErrAuthenticationFailed. Bytes that authenticate but do not decode
// to exactly a Record yield common.ErrMalformedPlaintext. No partial record
// is returned on any error.
func Decrypt(env Envelope, key *DerivedKey) (Record, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return Record{}, err
	}

	// gcm.Open panics on a nonce of the wrong size.
	if len(env.Nonce) != NonceSize || len(env.Ciphertext) < TagSize {
		return Record{}, common.ErrAuthenticationFailed
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return Record{}, common.ErrAuthenticationFailed
	}
	defer common.WipeByteArray(plaintext)

	return decodeRecord(plaintext)
}

// encodeRecord is the one canonical form: compact JSON, fields in
// declaration order.
func encodeRecord(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}

// decodeRecord accepts only bytes that encodeRecord would produce. The
// final comparison rejects what encoding/json tolerates: key case
// variants, duplicate keys, reordering and extra whitespace.
func decodeRecord(b []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	var w wireRecord
	if err := dec.Decode(&w); err != nil {
		return Record{}, fmt.Errorf("%w: %v", common.ErrMalformedPlaintext, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Record{}, fmt.Errorf("%w: trailing data", common.ErrMalformedPlaintext)
	}
	if w.Site == nil || w.Username == nil || w.Password == nil {
		return Record{}, fmt.Errorf("%w: missing field", common.ErrMalformedPlaintext)
	}

	rec := Record{Site: *w.Site, Username: *w.Username, Password: *w.Password}

	canonical, err := encodeRecord(rec)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", common.ErrMalformedPlaintext, err)
	}
	defer common.WipeByteArray(canonical)
	if !bytes.Equal(canonical, b) {
		return Record{}, fmt.Errorf("%w: non-canonical encoding", common.ErrMalformedPlaintext)
	}

	return rec, nil
}

func newAEAD(key *DerivedKey) (cipher.AEAD, error) {
	if key.Destroyed() {
		return nil, common.ErrVaultLocked
	}
	block, err := aes.NewCipher(key.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
