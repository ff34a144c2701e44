package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"campania/internal/config"
	"campania/internal/database"
	"campania/internal/handler"
	"campania/internal/notify"
	"campania/internal/service"
	"campania/internal/store"
	"campania/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Order store
	var orderStore service.OrderStore
	if cfg.DatabaseURI != "" {
		db, err := database.NewDB(ctx, cfg.DatabaseURI)
		if err != nil {
			return fmt.Errorf("connect to DB: %w", err)
		}
		defer database.CloseDB(db)

		if err := database.InitSchema(ctx, db); err != nil {
			return fmt.Errorf("init DB schema: %w", err)
		}
		orderStore = database.NewOrderStore(db)
		slog.Info("using postgres order store")
	} else {
		orderStore = store.NewFileStore(cfg.OrdersFile)
		slog.Info("using file order store", "path", cfg.OrdersFile)
	}

	authSvc, err := newAuthService(cfg)
	if err != nil {
		return err
	}

	// Services
	broker := notify.NewBroker()
	orderSvc := service.NewOrderService(orderStore, broker)
	catalogSvc := service.NewCatalogService(cfg.ProductsFile)
	deliverySvc := service.NewDeliveryService(cfg.DeliveryRulesFile)

	// Worker
	reloadWorker := worker.NewReloadWorker(cfg.ReloadInterval, map[string]worker.Reloader{
		"catalog":  catalogSvc,
		"delivery": deliverySvc,
	})
	reloadWorker.ReloadAll(ctx)

	srv := &http.Server{
		Addr: cfg.RunAddress,
		Handler: handler.NewRouter(handler.Deps{
			Orders:    orderSvc,
			Auth:      authSvc,
			Catalog:   catalogSvc,
			Delivery:  deliverySvc,
			Broker:    broker,
			Heartbeat: cfg.HeartbeatInterval,
			Origins:   cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// No WriteTimeout: order streams stay open indefinitely.
		IdleTimeout: 60 * time.Second,
		// Open streams end when the signal context is cancelled, so Shutdown
		// does not wait on them.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return reloadWorker.Start(gctx)
	})

	g.Go(func() error {
		slog.Info("starting server", "addr", cfg.RunAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShut()

		if err := srv.Shutdown(ctxShut); err != nil {
			slog.Error("server shutdown failed", "error", err)
			return srv.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

func newAuthService(cfg *config.Config) (*service.AuthService, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 && cfg.AdminPassword != "" {
		h, err := service.HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	if len(hash) == 0 {
		slog.Warn("no admin password configured; admin login is disabled")
	}

	secret := cfg.JWTSecret
	if secret == "" {
		s, err := service.GenerateSecret()
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		slog.Warn("JWT_SECRET not set; using a random key, admin tokens will not survive a restart")
		secret = s
	}

	return service.NewAuthService(hash, secret, cfg.TokenTTL), nil
}
