// Package models holds the client-side view of vault records.
package models

import (
	"time"

	"github.com/dmitrijs2005/zkvault/internal/cryptox"
)

// StoredRecord is a record as the server returns it: still sealed.
type StoredRecord struct {
	ID        string
	Envelope  cryptox.Envelope
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item is a decrypted record.
type Item struct {
	ID string
	cryptox.Record
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session is what a successful login leaves on the client.
type Session struct {
	ExpiresAt time.Time
	KDFSalt   []byte
}
