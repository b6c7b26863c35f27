// Package grpc exposes the user and record services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/zkvault/internal/api"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the part of services.UserService the transport needs.
type UserService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Verify(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
	GetSalt(ctx context.Context, email string) ([]byte, error)
}

// RecordService is the part of services.RecordService the transport needs.
type RecordService interface {
	List(ctx context.Context, ownerID string) ([]*models.Record, error)
	Add(ctx context.Context, ownerID string, env cryptox.Envelope) (*models.Record, error)
	Update(ctx context.Context, ownerID, recordID string, env cryptox.Envelope) (*models.Record, error)
	Delete(ctx context.Context, ownerID, recordID string) error
}

type GRPCServer struct {
	api.UnimplementedVaultServiceServer
	address string
	users   UserService
	records RecordService
	limiter *LoginLimiter
	logger  logging.Logger
}

// NewGRPCServer wires the handlers. A nil limiter disables rate limiting.
func NewGRPCServer(a string, l logging.Logger, us UserService, rs RecordService, limiter *LoginLimiter) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		records: rs,
		limiter: limiter,
	}
}

// newServer builds the grpc.Server with the interceptor chain:
// logging, then rate limiting, then authentication.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.rateLimitInterceptor,
		s.authInterceptor,
	))
	api.RegisterVaultServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
