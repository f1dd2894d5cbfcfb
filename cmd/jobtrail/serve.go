package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kiranshivaraju/jobtrail/internal/ai"
	"github.com/kiranshivaraju/jobtrail/internal/ai/provider"
	"github.com/kiranshivaraju/jobtrail/internal/api"
	"github.com/kiranshivaraju/jobtrail/internal/api/handler"
	mw "github.com/kiranshivaraju/jobtrail/internal/api/middleware"
	"github.com/kiranshivaraju/jobtrail/internal/cache"
	"github.com/kiranshivaraju/jobtrail/internal/config"
	"github.com/kiranshivaraju/jobtrail/internal/intake"
	"github.com/kiranshivaraju/jobtrail/internal/schema"
	"github.com/kiranshivaraju/jobtrail/internal/store"
)

const shutdownTimeout = 30 * time.Second

type serveOptions struct {
	migrationsDir  string
	skipMigrations bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP intake server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(root.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return run(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.migrationsDir, "migrations-dir", "migrations", "directory holding SQL migrations")
	cmd.Flags().BoolVar(&opts.skipMigrations, "skip-migrations", false, "do not apply migrations on startup")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, opts *serveOptions) error {
	slog.Info("config loaded",
		"ai_provider", cfg.AI.Provider,
		"store_backend", cfg.Database.Backend,
		"enrichment_policy", cfg.Intake.EnrichmentPolicy,
		"env", cfg.Server.Env,
	)

	// 1. Connect to the store
	st, closeStore, err := openStore(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer closeStore()

	// 2. Connect to Redis
	redisCache, err := cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.ConnectAttempts)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisCache.Close()
	slog.Info("redis connected")

	// 3. Build the extraction pipeline
	extractor, err := newExtractor(ctx, cfg)
	if err != nil {
		return err
	}
	slog.Info("extraction provider initialized", "provider", extractor.ProviderName())

	pipeline := intake.New(intake.Config{
		EnrichmentPolicy:     cfg.Intake.EnrichmentPolicy,
		MinDescriptionLength: cfg.Intake.MinDescriptionLength,
		WriteTimeout:         cfg.Database.WriteTimeout,
	}, extractor, st)

	// 4. Build router with dependencies
	auth := mw.NewAuth(cfg.Server.IngestKeyHash)
	if !auth.Enabled() {
		slog.Warn("INGEST_KEY_HASH not set, intake endpoints accept unauthenticated requests")
	}

	router := api.NewRouter(api.Dependencies{
		Auth:          auth,
		RateLimit:     mw.NewRateLimit(redisCache, cfg.Server.RateLimitPerMinute),
		HealthHandler: handler.NewHealthHandler(st, redisCache, extractor.ProviderName()),
		JobsHandler:   handler.NewJobsHandler(pipeline),
	})

	// 5. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AI.InferenceTimeout + cfg.Database.WriteTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, opts *serveOptions) (store.Store, func(), error) {
	switch cfg.Database.Backend {
	case config.BackendSupabase:
		st, err := store.NewSupabaseStore(cfg.Supabase.URL, cfg.Supabase.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("create supabase store: %w", err)
		}
		slog.Info("supabase store configured", "url", cfg.Supabase.URL)
		return st, func() {}, nil
	default:
		pool, err := store.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		slog.Info("database connected")

		if !opts.skipMigrations {
			if err := store.RunMigrations(cfg.Database.URL, opts.migrationsDir); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("run migrations: %w", err)
			}
			slog.Info("database migrations applied", "dir", opts.migrationsDir)
		}
		return store.NewPostgresStore(pool), pool.Close, nil
	}
}

// newExtractor builds the extractor for cfg. It carries a nil provider when
// none is configured.
func newExtractor(ctx context.Context, cfg *config.Config) (*ai.Extractor, error) {
	p, err := provider.New(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("create extraction provider: %w", err)
	}
	contract, err := schema.JobExtraction()
	if err != nil {
		return nil, fmt.Errorf("load extraction schema: %w", err)
	}
	return ai.NewExtractor(p, contract, ai.ExtractorConfig{
		Timeout:   cfg.AI.InferenceTimeout,
		MinLength: cfg.Intake.EnrichmentMinLength,
	}), nil
}
