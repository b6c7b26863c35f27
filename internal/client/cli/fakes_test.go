package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/client/config"
	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
)

var fastParams = cryptox.KDFParams{Algorithm: cryptox.KDFArgon2id, Iterations: 1, Memory: 8 * 1024, Threads: 1}

type fakeAuth struct {
	loggedIn bool

	signupEmail, signupPass string
	signupErr               error

	loginEmail, loginPass string
	loginSalt             []byte
	loginErr              error

	saltErr   error
	saltCalls int

	unlockSecrets []string
	unlockErr     error

	logoutCalls int
	logoutErr   error

	pingErr error
	closed  bool
}

func (f *fakeAuth) Signup(_ context.Context, email, password string) error {
	f.signupEmail, f.signupPass = email, password
	return f.signupErr
}

func (f *fakeAuth) Login(_ context.Context, email, password string) ([]byte, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.loggedIn = true
	return f.loginSalt, nil
}

func (f *fakeAuth) Salt(context.Context, string) ([]byte, error) {
	f.saltCalls++
	if f.saltErr != nil {
		return nil, f.saltErr
	}
	return f.loginSalt, nil
}

func (f *fakeAuth) Unlock(secret string, salt []byte) (*cryptox.DerivedKey, error) {
	f.unlockSecrets = append(f.unlockSecrets, secret)
	if f.unlockErr != nil {
		return nil, f.unlockErr
	}
	return cryptox.DeriveWithParams(secret, salt, fastParams)
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	f.loggedIn = false
	return f.logoutErr
}

func (f *fakeAuth) LoggedIn() bool              { return f.loggedIn }
func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error { f.closed = true; return nil }

// fakeVault stores records in plaintext and checks the key it is handed
// against the one it was created with.
type fakeVault struct {
	want  *cryptox.DerivedKey
	items []*models.Item
	next  int

	listErr   error
	deleteIDs []string
	updated   []cryptox.Record
}

func (f *fakeVault) checkKey(key *cryptox.DerivedKey) error {
	if key.Destroyed() {
		return common.ErrVaultLocked
	}
	if f.want != nil && !f.want.Equal(key) {
		return common.ErrAuthenticationFailed
	}
	return nil
}

func (f *fakeVault) List(_ context.Context, key *cryptox.DerivedKey) ([]*models.Item, error) {
	if err := f.checkKey(key); err != nil {
		return nil, err
	}
	return f.items, f.listErr
}

func (f *fakeVault) Get(ctx context.Context, key *cryptox.DerivedKey, id string) (*models.Item, error) {
	items, err := f.List(ctx, key)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeVault) Add(_ context.Context, key *cryptox.DerivedKey, rec cryptox.Record) (*models.Item, error) {
	if err := f.checkKey(key); err != nil {
		return nil, err
	}
	f.next++
	it := &models.Item{ID: fmt.Sprintf("id-%d", f.next), Record: rec, CreatedAt: time.Now()}
	f.items = append(f.items, it)
	return it, nil
}

func (f *fakeVault) Update(_ context.Context, key *cryptox.DerivedKey, id string, rec cryptox.Record) (*models.Item, error) {
	if err := f.checkKey(key); err != nil {
		return nil, err
	}
	for _, it := range f.items {
		if it.ID == id {
			it.Record = rec
			f.updated = append(f.updated, rec)
			return it, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeVault) Delete(_ context.Context, id string) error {
	f.deleteIDs = append(f.deleteIDs, id)
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func testKey(t *testing.T, secret string) *cryptox.DerivedKey {
	t.Helper()
	k, err := cryptox.DeriveWithParams(secret, []byte("0123456789abcdef"), fastParams)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	return k
}

func newTestApp(as *fakeAuth, vs *fakeVault, input ...string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:       cfg,
		authService:  as,
		vaultService: vs,
		reader:       bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n")),
		out:          out,
	}, out
}

// stubPasswords makes getPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer, string) ([]byte, error) {
		if len(answers) == 0 {
			return nil, io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
	t.Cleanup(func() { getPassword = orig })
}
