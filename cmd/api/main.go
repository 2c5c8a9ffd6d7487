package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-catalog/internal/apiclient"
	"product-catalog/internal/catalog"
	"product-catalog/internal/config"
	"product-catalog/internal/database"
	"product-catalog/internal/handler"
	"product-catalog/internal/repository"
	"product-catalog/internal/router"
	"product-catalog/internal/service"
	"product-catalog/internal/web"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("storage", cfg.Storage.Driver).
		Msg("starting product-catalog API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	productRepo, closer, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	productService := service.NewProductService(productRepo, logger)

	if len(cfg.Seed.Files) > 0 {
		n, err := catalog.Seed(ctx, productService, newSeedLoader(ctx, cfg.Seed, logger), cfg.Seed.Files, logger)
		if err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
		logger.Info().Int("count", n).Msg("catalogue seeded")
	}

	products := handler.NewProductsController(productService, logger)

	opts := router.Options{AllowedOrigins: cfg.Server.AllowedOrigins}
	if cfg.UI.Enabled {
		client := apiclient.New(cfg.Client.BaseURL,
			apiclient.WithTimeout(cfg.Client.Timeout),
			apiclient.WithLogger(logger),
		)
		opts.UI = web.NewHandler(client, "/ui", logger)
	}

	mux := router.New(products, opts, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      otelhttp.NewHandler(mux, "product-catalog"),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openRepository builds the configured storage backend. The returned closer
// releases its connections.
func openRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.ProductRepository, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return repository.NewPostgresProductRepository(pool, logger), closerFunc(func() error {
			pool.Close()
			return nil
		}), nil

	case config.StorageSQLite:
		db, err := database.OpenSQLite(ctx, cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return repository.NewSQLiteProductRepository(db, logger), db, nil

	default:
		return repository.NewMemoryProductRepository(logger), closerFunc(func() error { return nil }), nil
	}
}

// newSeedLoader reads seed files from disk, preferring S3 when it is enabled
// and reachable.
func newSeedLoader(ctx context.Context, cfg config.SeedConfig, logger zerolog.Logger) catalog.Loader {
	fileLoader := catalog.NewFileLoader(logger)
	if !cfg.S3Enabled {
		logger.Info().Msg("using local file system for catalogue files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3Prefix, true, logger)
}
