// Package models defines server-side data models persisted by the
// repositories.
package models

import "time"

// User is a registered account. Email is stored normalized and is unique.
// KDFSalt is generated once at signup and never changes; clients feed it
// to key derivation.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	KDFSalt      []byte
	CreatedAt    time.Time
}
