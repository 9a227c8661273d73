package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/resume-tailor/internal/cache"
	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/tailoring"
)

// newInvoker builds the model client; tests replace it
var newInvoker = func(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	return llm.NewClient(ctx, cfg.LLMConfig())
}

// runtime holds what every command needs after start-up
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	closers []func()
}

// setup loads configuration and builds a logger writing to the command's
// stderr so JSON output on stdout stays clean
func setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(viper.GetViper(), cfgFile, "")
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		JSON:   cfg.LogJSON,
		File:   cfg.LogFile,
		Output: zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())),
	})
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, log: log}
	rt.onClose(func() { _ = log.Sync() })
	return rt, nil
}

func (rt *runtime) onClose(fn func()) {
	rt.closers = append(rt.closers, fn)
}

// close runs cleanups in reverse order
func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}

// commandContext is the command's context, or Background when run without one
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readJob loads the job description from a file or, when jobURL is set, a posting page
func readJob(ctx context.Context, path, jobURL string, html bool) (string, error) {
	switch {
	case jobURL != "":
		return fetch.JobDescription(ctx, jobURL, nil)
	case path != "":
		text, err := ingestion.ReadFile(path, html)
		if err != nil {
			return "", fmt.Errorf("reading job description: %w", err)
		}
		return text, nil
	default:
		return "", errors.New("one of --job or --job-url is required")
	}
}

// keywordCache is Redis when REDIS_URL is set, otherwise process memory
func (rt *runtime) keywordCache(ctx context.Context) (tailoring.KeywordCache, error) {
	ttl := rt.cfg.CacheTTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	if rt.cfg.RedisURL == "" {
		return cache.NewMemory(ttl), nil
	}
	rc, err := cache.NewRedis(ctx, rt.cfg.RedisURL, ttl)
	if err != nil {
		return nil, err
	}
	rt.onClose(func() { _ = rc.Close() })
	rt.log.Info("keyword cache connected", zap.String("backend", "redis"))
	return rc, nil
}

// database connects when DATABASE_URL is set and returns nil otherwise
func (rt *runtime) database(ctx context.Context) (*db.DB, error) {
	if rt.cfg.DatabaseURL == "" {
		return nil, nil
	}
	database, err := db.Connect(ctx, rt.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	rt.onClose(database.Close)
	if err := database.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return database, nil
}

// engine wires the model client, cache and optional store
func (rt *runtime) engine(ctx context.Context, store tailoring.Store) (*tailoring.Engine, error) {
	client, err := newInvoker(ctx, rt.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	rt.onClose(func() { _ = client.Close() })

	kwCache, err := rt.keywordCache(ctx)
	if err != nil {
		return nil, err
	}

	rt.log.Debug("engine configured",
		zap.String("provider", rt.cfg.LLMProvider),
		zap.String("model", rt.cfg.LLMConfig().Model()),
		zap.Int("max_concurrency", rt.cfg.MaxConcurrency),
	)
	return tailoring.New(llm.NewLimiter(client, rt.cfg.MaxConcurrency), rt.cfg.EngineOptions(), tailoring.Deps{
		Store:  store,
		Cache:  kwCache,
		Logger: rt.log,
	}), nil
}
