package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrkit"
	"github.com/kailas-cloud/solrkit/internal/cache/embcache"
	cacheRedis "github.com/kailas-cloud/solrkit/internal/cache/redis"
	"github.com/kailas-cloud/solrkit/internal/config"
	"github.com/kailas-cloud/solrkit/internal/domain"
	logpkg "github.com/kailas-cloud/solrkit/internal/logger"
	"github.com/kailas-cloud/solrkit/internal/metrics"
	chiTransport "github.com/kailas-cloud/solrkit/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/solrkit/internal/transport/openai"
)

// app is the composition root shared by the commands.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
	client *solrkit.Client
	checks map[string]chiTransport.HealthCheck
	store  *cacheRedis.Store
}

func loadConfig(c *cli.Command) (config.Config, string, error) {
	env := c.String("env")
	var (
		cfg config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return config.Config{}, "", fmt.Errorf("load config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg, env, nil
}

func newApp(ctx context.Context, c *cli.Command) (*app, error) {
	cfg, env, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger, err := logpkg.New(env, cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	metrics.Register()

	a := &app{env: env, cfg: cfg, logger: logger, checks: make(map[string]chiTransport.HealthCheck)}

	opts := []solrkit.Option{
		solrkit.WithURL(cfg.Solr.BaseURL),
		solrkit.WithTimeout(cfg.Solr.Timeout()),
		solrkit.WithCore(cfg.Solr.DefaultCore),
		solrkit.WithWriter(solrkit.Writer(cfg.Solr.Writer)),
		solrkit.WithConcurrency(cfg.Solr.MaxConcurrency),
		solrkit.WithLogger(logger),
		solrkit.WithPrometheus(prometheus.DefaultRegisterer),
	}
	if cfg.Solr.Username != "" {
		opts = append(opts, solrkit.WithBasicAuth(cfg.Solr.Username, cfg.Solr.Password))
	}

	var store *cacheRedis.Store
	if cfg.Cache.Enabled {
		store, err = cacheRedis.NewStore(cacheRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			Prefix:   cfg.Cache.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("create cache: %w", err)
		}
		timeout := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("cache not ready: %w", err)
		}
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))
		opts = append(opts, solrkit.WithCache(store, cfg.Cache.TTL()))
		a.store = store
		a.checks["cache"] = store.Ping
	}

	if cfg.Embedding.Enabled() {
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
		var embedder domain.Embedder = base
		if store != nil {
			embedder = embcache.New(base, store, cfg.Embedding.Model, cfg.Cache.TTL(), metrics.EmbeddingCacheTotal, logger)
		}
		// Instruction prefix is outermost so cached vectors are keyed with it.
		if cfg.Embedding.QueryInstruction != "" {
			embedder = domain.NewInstructionEmbedder(embedder, cfg.Embedding.QueryInstruction)
		}
		opts = append(opts, solrkit.WithEmbedder(embedder))
		a.checks["embedding"] = base.HealthCheck
		logger.Info("Embedder created",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
		)
	}

	client, err := solrkit.New(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("create client: %w", err)
	}
	a.client = client
	if cfg.Solr.DefaultCore != "" {
		a.checks["solr"] = client.Ping
	}
	return a, nil
}

// close releases the client and the cache. A cache passed through WithCache
// is not owned by the client.
func (a *app) close() {
	a.client.Close()
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}
