// Package server initializes and runs the application server: it wires the
// AWS clients, repositories, and services, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/userstorer/internal/logging"
	"github.com/dmitrijs2005/userstorer/internal/server/auth"
	"github.com/dmitrijs2005/userstorer/internal/server/config"
	apphttp "github.com/dmitrijs2005/userstorer/internal/server/http"
	"github.com/dmitrijs2005/userstorer/internal/server/repositories/users"
	"github.com/dmitrijs2005/userstorer/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *apphttp.Server
}

// NewApp is the composition root: every dependency is constructed here and
// passed down by reference, including the single KeyProvider instance.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	dynamoClient, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("dynamodb init error: %w", err)
	}

	secretsClient, err := NewSecretsManagerClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("secretsmanager init error: %w", err)
	}

	repo := users.NewDynamoRepository(dynamoClient, cfg.UserTableName, cfg.EmailIndexName)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	keys := auth.NewKeyProvider(
		auth.NewSecretsManagerFetcher(secretsClient),
		cfg.PrivateKeySecretName,
		cfg.PublicKeySecretName,
	)

	authService := services.NewAuthService(repo, hasher, keys, cfg.JWTIssuer, cfg.TokenValidityDuration)
	userService := services.NewUserService(repo, hasher)

	handler := apphttp.NewHandler(authService, userService)
	srv := apphttp.NewServer(cfg.EndpointAddrHTTP, logger.With("module", "http_server"), handler)

	return &App{config: cfg, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
