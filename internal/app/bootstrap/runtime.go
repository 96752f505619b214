package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/merkato/storefront/internal/adapters/backend"
	cacheadapter "github.com/merkato/storefront/internal/adapters/cache"
	"github.com/merkato/storefront/internal/adapters/catalog"
	httpadapter "github.com/merkato/storefront/internal/adapters/http"
	"github.com/merkato/storefront/internal/adapters/security"
	"github.com/merkato/storefront/internal/adapters/storage"
	"github.com/merkato/storefront/internal/application"
	"github.com/merkato/storefront/internal/domain"
	"github.com/merkato/storefront/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("bootstrapping merkato storefront", "http_port", cfg.HTTPPort, "storage_backend", cfg.StorageBackend)

	snapshots, cleanup, err := openSnapshotStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokenSigner, err := security.NewJWTSigner(cfg.JWTKeyID, cfg.JWTPrivateKeyPEM, cfg.JWTPublicKeyPEM)
	if err != nil {
		if !cfg.AllowEphemeralJWT {
			cleanup(ctx)
			return nil, fmt.Errorf("init jwt signer: %w", err)
		}
		logger.Warn("using ephemeral JWT keys for local/dev runtime")
		tokenSigner, err = security.NewEphemeralJWTSigner(cfg.JWTKeyID)
		if err != nil {
			cleanup(ctx)
			return nil, fmt.Errorf("init ephemeral jwt signer: %w", err)
		}
	}

	gateway, err := backend.NewMockGateway(backend.MockGatewayDependencies{
		Latency: backend.Latency{
			Auth:  cfg.GatewayAuthLatency,
			Cart:  cfg.GatewayCartLatency,
			Order: cfg.GatewayOrderLatency,
		},
		Hasher: security.NewBcryptHasher(cfg.BcryptCost),
		Logger: logger,
	})
	if err != nil {
		cleanup(ctx)
		return nil, fmt.Errorf("init account gateway: %w", err)
	}

	toasts := application.NewToastCenter()
	cartStore := application.NewCartStore(ctx, snapshots, toasts, logger)
	authStore := application.NewAuthStore(application.AuthDependencies{
		Config: application.AuthConfig{
			TokenTTL:      cfg.TokenTTL,
			SyncNoticeTTL: cfg.SyncNoticeTTL,
		},
		Cart:      cartStore,
		Gateway:   gateway,
		Signer:    tokenSigner,
		Snapshots: snapshots,
		Notifier:  toasts,
		Logger:    logger,
	})
	checkoutStore := application.NewCheckoutStore(ctx, application.CheckoutDependencies{
		Cart:      cartStore,
		Gateway:   gateway,
		Snapshots: snapshots,
		Notifier:  toasts,
		Logger:    logger,
	})

	// While signed in, every cart change is pushed to the account backend.
	cartStore.SetSyncHook(func(ctx context.Context, cart domain.Cart) {
		user, ok := authStore.CurrentUser()
		if !ok {
			return
		}
		go func() {
			saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			if err := gateway.SaveCart(saveCtx, user.ID, cart); err != nil {
				logger.Warn("cart save to server failed", "operation", "save_cart", "outcome", "failure", "user_id", user.ID, "error", err.Error())
			}
		}()
	})

	authStore.RestoreSession(ctx)

	handler := httpadapter.NewHandler(cartStore, authStore, checkoutStore, toasts, catalog.NewStaticCatalog())
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		cleanupFn:  cleanup,
	}, nil
}

// openSnapshotStore selects the configured snapshot backend and returns it
// with its teardown.
func openSnapshotStore(ctx context.Context, cfg Config) (ports.SnapshotStore, func(context.Context), error) {
	noop := func(context.Context) {}
	switch cfg.StorageBackend {
	case StorageMemory:
		return storage.NewMemoryStore(), noop, nil
	case StorageRedis:
		client, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return cacheadapter.NewRedisSnapshotStore(client), func(context.Context) { _ = client.Close() }, nil
	default:
		store, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	}
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.cleanupFn(shutdownCtx)
	return nil
}
