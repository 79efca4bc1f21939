package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	pkgconfig "github.com/Skotchmaster/storefront/pkg/config"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
	"github.com/Skotchmaster/storefront/pkg/session"
)

const usage = "usage: storefront [serve|migrate|seed]"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	cfg := config.LoadConfig(envFile)

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() {
		if err := pkgdb.Close(db); err != nil {
			logger.Error("db_close_error", "error", err)
		}
	}()

	if err := repo.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	r := &repo.GormRepo{DB: db}

	switch cmd {
	case "migrate":
		logger.Info("migrate_done")
	case "seed":
		seedCtx := logging.IntoContext(context.Background(), logger)
		if err := seed(seedCtx, &service.CatalogService{Repo: r, Events: events.Noop{}}); err != nil {
			log.Fatalf("seed: %v", err)
		}
		logger.Info("seed_done")
	case "serve":
		if err := serve(cfg, logger, r); err != nil {
			log.Fatalf("serve: %v", err)
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

func newSessionStore(cfg pkgconfig.Config, logger *slog.Logger) (session.Store, func(), error) {
	if cfg.RedisURL == "" {
		logger.Warn("session_store_memory", "reason", "REDIS_URL not set")
		return session.NewMemoryStore(), func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := session.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return session.NewRedisStore(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
}

func newPublisher(cfg pkgconfig.Config, logger *slog.Logger) (events.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("events_disabled", "reason", "KAFKA_BROKERS not set")
		return events.Noop{}, func() {}, nil
	}
	prod, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, nil, err
	}
	return prod, func() {
		if err := prod.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}, nil
}

func serve(cfg pkgconfig.Config, logger *slog.Logger, r *repo.GormRepo) error {
	store, closeStore, err := newSessionStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	defer closeStore()

	pub, closePub, err := newPublisher(cfg, logger)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer closePub()

	carts := &service.CartService{Repo: r, Sessions: store, Events: pub}
	checkout := &service.CheckoutService{Repo: r, Sessions: store, Events: pub}
	catalog := &service.CatalogService{Repo: r, Events: pub}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.Secure())

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler:  &httpserver.CatalogHTTP{Svc: catalog, Cart: carts},
		CartHandler:     &httpserver.CartHTTP{Svc: carts},
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: checkout},
		Sessions: &session.Manager{
			Secret: cfg.SessionSecret,
			TTL:    cfg.SessionTTL,
			Secure: cfg.CookieSecure,
		},
		CSRF:  csrf.Config{Secure: cfg.CookieSecure, EnforceSameOrigin: true},
		Ready: r.Ping,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting_down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("shutdown_complete")
	return nil
}
