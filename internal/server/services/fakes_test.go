package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/dbx"
	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/server/auth"
	"github.com/dmitrijs2005/zkvault/internal/server/migrations"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/records"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/users"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- users ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	byMail map[string]*models.User

	createErr error
	getErr    error
	creates   int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byMail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byMail[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	cp := *u
	f.byMail[u.Email] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byMail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

// --- records ---

type fakeRecordsRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Record

	createErr error
	listErr   error
	updateErr error
	deleteErr error
}

func newFakeRecordsRepo() *fakeRecordsRepo {
	return &fakeRecordsRepo{byID: map[string]*models.Record{}}
}

func (f *fakeRecordsRepo) Create(_ context.Context, r *models.Record) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *r
	now := time.Now().UTC()
	cp.CreatedAt, cp.UpdatedAt = now, now
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeRecordsRepo) ListByOwner(_ context.Context, ownerID string) ([]*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Record{}
	for _, r := range f.byID {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRecordsRepo) Update(_ context.Context, r *models.Record) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	cur, ok := f.byID[r.ID]
	if !ok || cur.OwnerID != r.OwnerID {
		return nil, common.ErrNotFound
	}
	cur.Ciphertext, cur.Nonce, cur.UpdatedAt = r.Ciphertext, r.Nonce, time.Now().UTC()
	cp := *cur
	return &cp, nil
}

func (f *fakeRecordsRepo) Delete(_ context.Context, ownerID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	cur, ok := f.byID[id]
	if !ok || cur.OwnerID != ownerID {
		return common.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRecordsRepo

	txErr error
	txs   int
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), r: newFakeRecordsRepo()}
}

func (m *fakeRepoManager) Users() users.Repository     { return m.u }
func (m *fakeRepoManager) Records() records.Repository { return m.r }

func (m *fakeRepoManager) WithTx(ctx context.Context, fn func(context.Context, repomanager.Repositories) error) error {
	m.txs++
	if m.txErr != nil {
		return m.txErr
	}
	return fn(ctx, m)
}

func (m *fakeRepoManager) RunMigrations(context.Context) error { return nil }
func (m *fakeRepoManager) Ping(context.Context) error          { return nil }
func (m *fakeRepoManager) Close() error                        { return nil }

// --- constructors ---

var testSaltKey = []byte("decoy-salt-key")

func newTestUserService(t *testing.T, m repomanager.RepositoryManager) *UserService {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(auth.MinBcryptCost)
	if err != nil {
		t.Fatalf("NewPasswordHasher: %v", err)
	}
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	return NewUserService(m, tokens, hasher, testSaltKey, logging.NewNopLogger())
}

// newSQLiteManager returns a migrated in-memory SQLite manager private to t.
func newSQLiteManager(t *testing.T) *repomanager.SQLRepositoryManager {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	db, err := sql.Open(dbx.SQLite.DriverName(), dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db, dbx.SQLite))
	return repomanager.NewSQLRepositoryManager(db, dbx.SQLite)
}
