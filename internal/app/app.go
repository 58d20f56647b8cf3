// Package app wires store, backend client, session, cart, and checkout
// together and runs the interactive storefront alongside the local ops
// listener.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/api"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/cart"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/checkout"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/cli"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/config"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/session"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/store"
	filestore "github.com/Sakurayo-Crispita/saborreal-storefront/internal/store/file"
	redisstore "github.com/Sakurayo-Crispita/saborreal-storefront/internal/store/redis"
	"github.com/Sakurayo-Crispita/saborreal-storefront/pkg/health"
	"github.com/Sakurayo-Crispita/saborreal-storefront/pkg/httpclient"
	"github.com/Sakurayo-Crispita/saborreal-storefront/pkg/tracing"
)

// App holds the wired dependency graph.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	rdb       *goredis.Client // nil for the file driver
	session   *session.Manager
	cart      *cart.Manager
	ui        *cli.UI
	opsServer *http.Server

	shutdownTracing func(context.Context) error
}

// New creates the application, initializing all dependencies.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Tracing (no-op unless enabled).
	tcfg := tracing.DefaultConfig("saborreal-storefront")
	tcfg.Enabled = cfg.TracingEnabled
	tcfg.OTLPEndpoint = cfg.OTLPEndpoint
	tcfg.Environment = cfg.Environment
	shutdownTracing, err := tracing.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.shutdownTracing = shutdownTracing

	// Persistent store.
	var st store.Store
	switch cfg.StoreDriver {
	case "redis":
		a.rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		st = redisstore.New(a.rdb, time.Duration(cfg.RedisTTL)*time.Hour)
		logger.Info("using redis store", slog.String("addr", cfg.RedisAddr))
	default:
		fst, err := filestore.Open(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open store file: %w", err)
		}
		st = fst
		logger.Info("using file store", slog.String("path", cfg.StorePath))
	}

	// Backend client with retry and circuit breaker.
	hcfg := httpclient.DefaultConfig()
	hcfg.Timeout = time.Duration(cfg.RequestTimeout) * time.Second
	base := httpclient.New(hcfg)
	breaker := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("backend"), logger)

	// Session owns the token; the api client reads it through the source
	// func and reports 401s back through the expiry hook.
	backend := api.New(cfg.APIBaseURL, breaker, nil, logger)
	sess := session.NewManager(st, backend, logger)
	backend.SetTokenSource(sess.Token)
	backend.OnUnauthorized(sess.Expire)
	a.session = sess

	a.cart = cart.NewManager(st, logger)
	sess.OnIdentityChange(a.cart.HandleIdentityChange)

	co := checkout.NewService(backend, sess, a.cart, logger)

	a.ui = cli.New(backend, sess, a.cart, co, st, logger)

	// Ops listener.
	if cfg.OpsEnabled {
		healthHandler := health.NewHandler()
		healthHandler.Register("backend", func(ctx context.Context) error {
			resp, err := base.Get(ctx, cfg.APIBaseURL+"/")
			if err != nil {
				return err
			}
			_ = resp.Body.Close()
			return nil
		})
		if a.rdb != nil {
			healthHandler.Register("redis", func(ctx context.Context) error {
				return a.rdb.Ping(ctx).Err()
			})
		}

		a.opsServer = &http.Server{
			Addr:         cfg.OpsAddr,
			Handler:      newOpsRouter(healthHandler, sess, a.cart, logger),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
	}

	return a, nil
}

// Run restores the session, starts the ops listener, and runs the
// interactive storefront until the context is canceled or the user quits.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	if a.opsServer != nil {
		go func() {
			a.logger.Info("starting ops listener", slog.String("addr", a.opsServer.Addr))
			if err := a.opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("ops listener: %w", err)
			}
		}()
	}

	if err := a.session.Restore(ctx); err != nil {
		a.logger.Warn("session restore failed", slog.String("error", err.Error()))
	}

	uiDone := make(chan error, 1)
	go func() {
		uiDone <- a.ui.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	case err := <-uiDone:
		if err != nil {
			return fmt.Errorf("storefront: %w", err)
		}
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.opsServer != nil {
		if err := a.opsServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("ops listener shutdown error", slog.String("error", err.Error()))
		}
	}

	if err := a.shutdownTracing(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("storefront shutdown complete")
	return nil
}
