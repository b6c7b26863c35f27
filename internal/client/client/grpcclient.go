package client

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/api"
	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      api.VaultServiceClient

	mu          sync.RWMutex
	accessToken string
}

// NewGRPCClient connects lazily to endpointURL. Each call is bounded by
// timeout when it is positive. Extra dial options are appended after the
// defaults (insecure transport, token interceptor).
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewVaultServiceClient(conn)
	return c, nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Signup(ctx context.Context, email, password string) error {
	_, err := s.client.Signup(ctx, &api.SignupRequest{Email: email, Password: password})
	return mapError(err)
}

// Login opens a session and keeps its token for later calls.
func (s *GRPCClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	s.setToken(resp.AccessToken)
	return &models.Session{ExpiresAt: resp.ExpiresAt, KDFSalt: resp.KDFSalt}, nil
}

// Logout tells the server and drops the token whatever the answer.
func (s *GRPCClient) Logout(ctx context.Context) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	_, err := s.client.Logout(ctx, &api.LogoutRequest{})
	s.setToken("")
	return mapError(err)
}

func (s *GRPCClient) GetSalt(ctx context.Context, email string) ([]byte, error) {
	resp, err := s.client.GetSalt(ctx, &api.GetSaltRequest{Email: email})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.KDFSalt, nil
}

func (s *GRPCClient) ListRecords(ctx context.Context) ([]*models.StoredRecord, error) {
	resp, err := s.client.ListRecords(ctx, &api.ListRecordsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*models.StoredRecord, 0, len(resp.Records))
	for _, r := range resp.Records {
		out = append(out, recordFromAPI(r))
	}
	return out, nil
}

func (s *GRPCClient) AddRecord(ctx context.Context, env cryptox.Envelope) (*models.StoredRecord, error) {
	resp, err := s.client.AddRecord(ctx, &api.AddRecordRequest{Ciphertext: env.Ciphertext, Nonce: env.Nonce})
	if err != nil {
		return nil, mapError(err)
	}
	return recordFromAPI(resp.Record), nil
}

func (s *GRPCClient) UpdateRecord(ctx context.Context, id string, env cryptox.Envelope) (*models.StoredRecord, error) {
	resp, err := s.client.UpdateRecord(ctx, &api.UpdateRecordRequest{ID: id, Ciphertext: env.Ciphertext, Nonce: env.Nonce})
	if err != nil {
		return nil, mapError(err)
	}
	return recordFromAPI(resp.Record), nil
}

func (s *GRPCClient) DeleteRecord(ctx context.Context, id string) error {
	_, err := s.client.DeleteRecord(ctx, &api.DeleteRecordRequest{ID: id})
	return mapError(err)
}

func recordFromAPI(r *api.Record) *models.StoredRecord {
	if r == nil {
		return nil
	}
	return &models.StoredRecord{
		ID:        r.ID,
		Envelope:  cryptox.Envelope{Ciphertext: r.Ciphertext, Nonce: r.Nonce},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
