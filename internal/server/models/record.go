package models

import "time"

// Record is one encrypted credential. The server only ever sees the
// envelope; OwnerID is set at creation and never changes.
type Record struct {
	ID         string
	OwnerID    string
	Ciphertext []byte
	Nonce      []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
