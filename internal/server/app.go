// Package server wires configuration, storage, services and the gRPC
// endpoint together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/server/auth"
	"github.com/dmitrijs2005/zkvault/internal/server/config"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/objstore"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/zkvault/internal/server/services"
	"golang.org/x/crypto/hkdf"

	gs "github.com/dmitrijs2005/zkvault/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	users   *services.UserService
	records *services.RecordService
}

// openRepos is a seam for tests.
var openRepos = repomanager.Open

// NewApp validates c, connects to storage, applies migrations and builds
// the services. The caller owns the returned App and must Run it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens := auth.NewTokenManager([]byte(c.SecretKey), c.SessionTTL)
	saltKey, err := decoySaltKey(c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("decoy salt key: %w", err)
	}

	repos, err := openRepos(ctx, repomanager.Options{
		DSN: c.DatabaseDSN,
		S3: objstore.ClientConfig{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		},
		ConnectRetries: c.ConnectRetries,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{
		config:  c,
		logger:  logger,
		repos:   repos,
		users:   services.NewUserService(repos, tokens, hasher, saltKey, logger),
		records: services.NewRecordService(repos, logger),
	}, nil
}

// decoySaltKey separates the decoy salt key from the JWT signing key
// while keeping both derived from the one configured secret.
func decoySaltKey(secret string) ([]byte, error) {
	stream := hkdf.New(sha256.New, []byte(secret), nil, []byte("zkvault/decoy-kdf-salt"))
	key := make([]byte, 32)
	if _, err := io.ReadFull(stream, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives,
// then closes storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"session_ttl", app.config.SessionTTL.String(),
		"bcrypt_cost", app.config.BcryptCost,
	)

	app.initSignalHandler(ctx, cancelFunc)

	limiter := gs.NewLoginLimiter(app.config.LoginAttempts, app.config.LoginWindow)
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.users, app.records, limiter)

	runErr := s.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", runErr.Error())
	}

	if err := app.repos.Close(); err != nil {
		app.logger.Error(context.Background(), "storage close failed", "error", err.Error())
	}

	app.logger.Info(context.Background(), "App stopped")
	return runErr
}
