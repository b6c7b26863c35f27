package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/api"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// ---- fakes ----

type fakeUsers struct {
	signupOut *models.User
	signupErr error

	loginOut *services.Session
	loginErr error

	// tokens maps accepted tokens to subjects.
	tokens map[string]string

	logoutErr  error
	loggedOut  []string
	saltOut    []byte
	saltErr    error
	lastEmail  string
	verifyHits int
}

func (f *fakeUsers) Signup(_ context.Context, email, _ string) (*models.User, error) {
	f.lastEmail = email
	return f.signupOut, f.signupErr
}

func (f *fakeUsers) Login(_ context.Context, email, _ string) (*services.Session, error) {
	f.lastEmail = email
	return f.loginOut, f.loginErr
}

func (f *fakeUsers) Verify(_ context.Context, token string) (string, error) {
	f.verifyHits++
	if token == "" {
		return "", common.ErrUnauthorized
	}
	sub, ok := f.tokens[token]
	if !ok {
		return "", common.ErrInvalidToken
	}
	return sub, nil
}

func (f *fakeUsers) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return f.logoutErr
}

func (f *fakeUsers) GetSalt(_ context.Context, email string) ([]byte, error) {
	f.lastEmail = email
	return f.saltOut, f.saltErr
}

type fakeRecords struct {
	listOut []*models.Record
	listErr error

	addErr    error
	updateErr error
	deleteErr error

	lastOwner string
	lastID    string
	lastEnv   cryptox.Envelope
}

func (f *fakeRecords) List(_ context.Context, ownerID string) ([]*models.Record, error) {
	f.lastOwner = ownerID
	return f.listOut, f.listErr
}

func (f *fakeRecords) Add(_ context.Context, ownerID string, env cryptox.Envelope) (*models.Record, error) {
	f.lastOwner, f.lastEnv = ownerID, env
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &models.Record{ID: "r1", OwnerID: ownerID, Ciphertext: env.Ciphertext, Nonce: env.Nonce, CreatedAt: time.Unix(1, 0).UTC()}, nil
}

func (f *fakeRecords) Update(_ context.Context, ownerID, id string, env cryptox.Envelope) (*models.Record, error) {
	f.lastOwner, f.lastID, f.lastEnv = ownerID, id, env
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Record{ID: id, OwnerID: ownerID, Ciphertext: env.Ciphertext, Nonce: env.Nonce}, nil
}

func (f *fakeRecords) Delete(_ context.Context, ownerID, id string) error {
	f.lastOwner, f.lastID = ownerID, id
	return f.deleteErr
}

// ---- helpers ----

func newTestServer(us UserService, rs RecordService, limiter *LoginLimiter) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.NewNopLogger(), us, rs, limiter)
}

// startBufconn serves s in-process and returns a client connected to it.
func startBufconn(t *testing.T, s *GRPCServer) api.VaultServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return api.NewVaultServiceClient(conn)
}
