package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/snackshop/storefront/internal/cart"
	"github.com/snackshop/storefront/internal/catalog"
	"github.com/snackshop/storefront/internal/config"
	shophttp "github.com/snackshop/storefront/internal/http"
	"github.com/snackshop/storefront/internal/service"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	repo, err := catalog.NewSQLiteRepository(cfg.CatalogDBPath)
	if err != nil {
		logger.Fatal("failed to open catalog database", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.RunMigrations(); err != nil {
		logger.Fatal("failed to run catalog migrations", zap.Error(err))
	}

	cat, err := catalog.Load(context.Background(), repo)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("products", cat.Len()))

	store := cart.NewMemoryStore(cfg.SessionTTL)
	defer store.Close()

	// Mutation observer: the store knows nothing about rendering or
	// logging, watchers do.
	store.Watch(func(sessionID string, lines []cart.Line) {
		logger.Debug("cart mutated",
			zap.String("session_id", sessionID),
			zap.Int("lines", len(lines)))
	})

	svc := service.NewCartService(cat, store, logger)
	router := shophttp.NewRouter(svc, cat, store, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
