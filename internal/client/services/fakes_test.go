package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// fakeClient is an in-memory stand-in for the server.
type fakeClient struct {
	mu sync.Mutex

	records map[string]*models.StoredRecord
	order   []string
	nextID  int

	token   string
	salt    []byte
	closed  bool
	logouts int

	SignupErr error
	LoginErr  error
	SaltErr   error
	PingErr   error
	ListErr   error
	AddErr    error

	LastSaltEmail string
}

func newFakeClient() *fakeClient {
	return &fakeClient{records: map[string]*models.StoredRecord{}, salt: []byte("server-salt-0001")}
}

func (f *fakeClient) Close() error                                 { f.closed = true; return nil }
func (f *fakeClient) Ping(context.Context) error                   { return f.PingErr }
func (f *fakeClient) LoggedIn() bool                               { return f.token != "" }
func (f *fakeClient) Signup(context.Context, string, string) error { return f.SignupErr }

func (f *fakeClient) Login(_ context.Context, _, _ string) (*models.Session, error) {
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	f.token = "tok"
	return &models.Session{ExpiresAt: time.Now().Add(time.Hour), KDFSalt: f.salt}, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.logouts++
	f.token = ""
	return nil
}

func (f *fakeClient) GetSalt(_ context.Context, email string) ([]byte, error) {
	f.LastSaltEmail = email
	if f.SaltErr != nil {
		return nil, f.SaltErr
	}
	return f.salt, nil
}

func (f *fakeClient) ListRecords(context.Context) ([]*models.StoredRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]*models.StoredRecord, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.records[id])
	}
	return out, nil
}

func (f *fakeClient) AddRecord(_ context.Context, env cryptox.Envelope) (*models.StoredRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AddErr != nil {
		return nil, f.AddErr
	}
	f.nextID++
	r := &models.StoredRecord{ID: fmt.Sprintf("r%d", f.nextID), Envelope: env, CreatedAt: time.Now()}
	f.records[r.ID] = r
	f.order = append(f.order, r.ID)
	return r, nil
}

func (f *fakeClient) UpdateRecord(_ context.Context, id string, env cryptox.Envelope) (*models.StoredRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	r.Envelope = env
	return r, nil
}

func (f *fakeClient) DeleteRecord(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.records, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// fastParams keeps tests quick; production always uses cryptox.Derive.
var fastParams = cryptox.KDFParams{Algorithm: cryptox.KDFArgon2id, Iterations: 1, Memory: 8 * 1024, Threads: 1}

func fastDerive(secret string, salt []byte) (*cryptox.DerivedKey, error) {
	return cryptox.DeriveWithParams(secret, salt, fastParams)
}

func testKey(t *testing.T, secret string) *cryptox.DerivedKey {
	t.Helper()
	k, err := fastDerive(secret, []byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	t.Cleanup(k.Destroy)
	return k
}
