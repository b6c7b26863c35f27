package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token and the account's KDF salt, so
// the client can derive its key right after logging in.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	KDFSalt     []byte    `json:"kdf_salt"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetSaltRequest struct {
	Email string `json:"email"`
}

type GetSaltResponse struct {
	KDFSalt []byte `json:"kdf_salt"`
}

// Record is an encrypted vault record as stored by the server. Ciphertext
// includes the GCM tag; Nonce is sent alongside, never concatenated.
type Record struct {
	ID         string    `json:"id"`
	Ciphertext []byte    `json:"ciphertext"`
	Nonce      []byte    `json:"nonce"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListRecordsRequest struct{}

type ListRecordsResponse struct {
	Records []*Record `json:"records"`
}

type AddRecordRequest struct {
	Ciphertext []byte `json:"ciphertext"`
	Nonce      []byte `json:"nonce"`
}

type AddRecordResponse struct {
	Record *Record `json:"record"`
}

type UpdateRecordRequest struct {
	ID         string `json:"id"`
	Ciphertext []byte `json:"ciphertext"`
	Nonce      []byte `json:"nonce"`
}

type UpdateRecordResponse struct {
	Record *Record `json:"record"`
}

type DeleteRecordRequest struct {
	ID string `json:"id"`
}

type DeleteRecordResponse struct{}
