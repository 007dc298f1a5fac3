package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/auth"
	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plangen"
	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plans"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/artifacts"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/config"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/llm/gemini"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/planrepo"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/userrepo"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:   cfg.Auth.Secret,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

func provideGeminiClient(cfg *config.Config, logger *slog.Logger) (*gemini.Client, error) {
	return gemini.NewClient(
		cfg.Gemini.APIKey,
		cfg.Gemini.BaseURL,
		cfg.Gemini.Model,
		cfg.Gemini.Temperature,
		cfg.Gemini.MaxOutputTokens,
		logger,
	)
}

// providePgxPool connects to Postgres when a DSN is configured. A nil pool
// switches the repositories to their in-memory implementations.
func providePgxPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func providePlanRepository(pool *pgxpool.Pool) plans.Repository {
	if pool == nil {
		return planrepo.NewMemoryRepository()
	}
	return planrepo.NewPostgresRepository(pool)
}

// provideArtifactRecorder assembles the queue, writer and store for
// generation artifacts. Every piece degrades to an in-process fallback.
func provideArtifactRecorder(cfg *config.Config, logger *slog.Logger) plangen.ArtifactRecorder {
	store := buildArtifactStore(cfg, logger)
	writer := artifacts.NewStoreWriter(store, logger)
	queue := buildArtifactQueue(cfg, logger)
	queue.SetHandler(writer.Handle)
	return artifacts.NewQueueRecorder(queue, logger)
}

func buildArtifactStore(cfg *config.Config, logger *slog.Logger) artifacts.ObjectStore {
	if strings.TrimSpace(cfg.Artifacts.Endpoint) == "" {
		logger.Info("artifact store endpoint not set, using memory store")
		return artifacts.NewMemoryStore()
	}
	store, err := artifacts.NewMinioStore(
		cfg.Artifacts.Endpoint,
		cfg.Artifacts.AccessKey,
		cfg.Artifacts.SecretKey,
		cfg.Artifacts.Bucket,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize artifact store, using memory store", "error", err)
		return artifacts.NewMemoryStore()
	}
	logger.Info("artifact object store enabled", "bucket", cfg.Artifacts.Bucket)
	return store
}

func buildArtifactQueue(cfg *config.Config, logger *slog.Logger) artifacts.Queue {
	if cfg.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to immediate queue", "error", err)
			return artifacts.NewImmediateQueue()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to immediate queue", "error", err)
			return artifacts.NewImmediateQueue()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to immediate queue", "error", err)
			client.Close()
		} else {
			logger.Info("artifact valkey queue enabled", "addr", cfg.Valkey.Addr)
			return artifacts.NewValkeyQueue(client, cfg.Valkey.QueueKey, logger)
		}
	}
	return artifacts.NewImmediateQueue()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
