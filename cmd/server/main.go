package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	_ "github.com/elffinance/microfin-gateway/docs"
	"github.com/elffinance/microfin-gateway/internal/api"
	"github.com/elffinance/microfin-gateway/internal/api/metrics"
	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
	"github.com/elffinance/microfin-gateway/internal/core/service"
	"github.com/elffinance/microfin-gateway/internal/core/session"
	"github.com/elffinance/microfin-gateway/internal/infrastructure/config"
	"github.com/elffinance/microfin-gateway/internal/infrastructure/db/memory"
	"github.com/elffinance/microfin-gateway/internal/infrastructure/db/mongo"
	"github.com/elffinance/microfin-gateway/internal/infrastructure/db/redis"
	"github.com/elffinance/microfin-gateway/internal/infrastructure/http/handlers"
	"github.com/elffinance/microfin-gateway/internal/infrastructure/tokenseal"
	"github.com/elffinance/microfin-gateway/internal/infrastructure/upstream"
	"github.com/elffinance/microfin-gateway/internal/shell"
	"github.com/elffinance/microfin-gateway/pkg/logger"
)

const (
	appName         = "microfin"
	shutdownTimeout = 15 * time.Second
)

// @title        microfin gateway
// @version      1.0
// @description  Session and role gateway in front of the ELF Finance API.
// @BasePath     /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "microfin-gateway: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if cfg.LogPretty {
		figure.NewFigure(appName, "cybermedium", true).Print()
		fmt.Println()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sealer, err := tokenseal.New(cfg.Session.TokenSealKey)
	if err != nil {
		return err
	}
	if cfg.Session.TokenSealKey == "" && cfg.Session.TokenStore != "memory" {
		log.Warn().Msg("TOKEN_SEAL_KEY not set, refresh tokens are stored unsealed")
	}

	tokens, deps, closeStore, err := openTokenStore(ctx, cfg, sealer, log)
	if err != nil {
		return err
	}
	defer closeStore()

	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, upstream.WithObserver(metrics.ObserveUpstream))

	auth := service.NewAuthService(client, tokens, cfg.Session.PhonePrefix, logger.Component("auth"))
	sessions := service.NewSessionService(auth, tokens, logger.Component("session"))
	resources := service.NewResourceService(client, sessions, logger.Component("resources"))
	resources.ObserveRefresh(metrics.ObserveRefresh)

	sh, err := shell.New(shell.BaseURL(cfg.Shell.BaseURL, cfg.Shell.Platform, cfg.Shell.PublicURL), cfg.Shell.Platform)
	if err != nil {
		return fmt.Errorf("shell base url: %w", err)
	}

	registry := session.NewRegistry()
	metrics.TrackActiveDevices(registry.Len)
	session.NewJanitor(registry, cfg.Session.DeviceIdle, 0, logger.Component("janitor")).Start(ctx)

	e := api.NewRouter(api.Deps{
		Registry:     registry,
		Sessions:     sessions,
		Navigation:   service.NewNavigation(domain.DefaultMenu),
		Resources:    resources,
		Installments: service.NewInstallmentService(resources, logger.Component("installments")),
		Dashboard:    service.NewDashboardService(resources),
		Tenants:      service.NewTenantService(client, logger.Component("tenants")),
		Shell:        sh,
		Health:       deps,
		CookieSecure: cfg.Session.CookieSecure,
		Log:          logger.Component("http"),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("env", cfg.Env).
			Str("upstream", cfg.Upstream.BaseURL).
			Str("token_store", cfg.Session.TokenStore).
			Msg("gateway listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openTokenStore connects the configured refresh token store and returns the
// readiness checks that go with it.
func openTokenStore(ctx context.Context, cfg *config.Config, sealer tokenseal.Sealer, log zerolog.Logger) (ports.RefreshTokenRepository, map[string]handlers.Pinger, func(), error) {
	switch cfg.Session.TokenStore {
	case "redis":
		client, err := redis.Connect(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}
		deps := map[string]handlers.Pinger{"redis": handlers.RedisPinger(client)}
		return redis.NewRefreshTokenRepository(client, sealer, cfg.Session.TokenTTL), deps, closeFn, nil

	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}
		repo := mongo.NewRefreshTokenRepository(db, sealer)
		if err := repo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		deps := map[string]handlers.Pinger{"mongodb": handlers.MongoPinger(db)}
		return repo, deps, closeFn, nil

	default:
		log.Warn().Msg("refresh tokens kept in memory, sessions will not survive a restart")
		return memory.NewRefreshTokenRepository(), nil, func() {}, nil
	}
}
