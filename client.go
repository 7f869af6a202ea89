package solrkit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/solrkit/internal/cache"
	cacheRedis "github.com/kailas-cloud/solrkit/internal/cache/redis"
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/component/registry"
	"github.com/kailas-cloud/solrkit/internal/domain"
	"github.com/kailas-cloud/solrkit/internal/metrics"
	"github.com/kailas-cloud/solrkit/internal/query"
	"github.com/kailas-cloud/solrkit/internal/request"
	"github.com/kailas-cloud/solrkit/internal/transport/solr"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

const (
	defaultConcurrency    = 4
	defaultCacheReadiness = 10 * time.Second
)

// Client sends queries to the engine and parses the responses.
type Client struct {
	transport   *solr.Transport
	registry    *component.Registry
	cache       cache.Cache
	cacheTTL    time.Duration
	embedder    Embedder
	core        string
	writer      Writer
	concurrency int
	obs         *observer
	closers     []func()
}

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{concurrency: defaultConcurrency, writer: WriterJSON}
	for _, o := range opts {
		o.apply(cfg)
	}
	if !cfg.writer.IsValid() {
		return nil, fmt.Errorf("solrkit: %w", domain.NewInvalidOption("wt", string(cfg.writer)))
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tr, err := solr.New(solr.Config{
		BaseURL:    cfg.baseURL,
		Username:   cfg.username,
		Password:   cfg.password,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("solrkit: %w", err)
	}

	obs, err := newObserver(logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	reg := registry.Default()
	for _, r := range cfg.components {
		reg.Register(r.t, r.b, r.p)
	}

	c := &Client{
		transport:   tr,
		registry:    reg,
		cache:       cfg.cache,
		cacheTTL:    cfg.cacheTTL,
		embedder:    cfg.embedder,
		core:        cfg.core,
		writer:      cfg.writer,
		concurrency: cfg.concurrency,
		obs:         obs,
	}
	if c.embedder == nil {
		c.embedder = domain.EmbedderFunc(noEmbedder)
	}
	if c.concurrency <= 0 {
		c.concurrency = defaultConcurrency
	}

	if len(cfg.redisAddrs) > 0 && c.cache == nil {
		store, err := cacheRedis.NewStore(cacheRedis.Config{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPass,
			Prefix:   "solrkit:",
		})
		if err != nil {
			return nil, fmt.Errorf("solrkit: create redis cache: %w", err)
		}
		if err := store.WaitForReady(context.Background(), defaultCacheReadiness); err != nil {
			store.Close()
			return nil, fmt.Errorf("solrkit: redis cache not ready: %w", err)
		}
		c.cache = store
		c.closers = append(c.closers, store.Close)
	}
	return c, nil
}

// Close releases the resources the client owns.
func (c *Client) Close() {
	for _, f := range c.closers {
		f()
	}
	c.closers = nil
}

// Ping checks that the default core answers.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", c.core, start, err) }()

	if c.core == "" {
		return fmt.Errorf("ping: %w: no core configured", domain.ErrInvalidConfiguration)
	}
	if err := c.transport.Ping(ctx, c.core); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Build renders q into request parameters without sending it. KNN text is
// not embedded here.
func (c *Client) Build(q *Query) (*Request, error) {
	return query.Build(c.registry, c.prepare(q))
}

// Select runs q against the default core.
func (c *Client) Select(ctx context.Context, q *Query) (*Result, error) {
	return c.SelectCore(ctx, c.core, q)
}

// SelectCore runs q against core.
func (c *Client) SelectCore(ctx context.Context, core string, q *Query) (res *Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("select", core, start, err) }()

	if core == "" {
		return nil, fmt.Errorf("select: %w: no core configured", domain.ErrInvalidConfiguration)
	}
	q, err = c.embed(ctx, c.prepare(q))
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	req, err := query.Build(c.registry, q)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	body, err := c.execute(ctx, core, q.HandlerPath(), req)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	data, err := wire.DecodeBytes(body)
	if err != nil {
		return nil, fmt.Errorf("select: decode response: %w", err)
	}
	res, err = query.Parse(c.registry, q, data)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	recordParsed(q, res)
	return res, nil
}

// SelectAll runs the queries concurrently against the default core and
// returns the results in the same order. The first failure cancels the rest.
func (c *Client) SelectAll(ctx context.Context, qs ...*Query) ([]*Result, error) {
	results := make([]*Result, len(qs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, q := range qs {
		g.Go(func() error {
			res, err := c.Select(ctx, q)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// prepare applies client defaults on a shallow copy so q is never mutated.
func (c *Client) prepare(q *Query) *Query {
	cp := *q
	if cp.Writer == "" {
		cp.Writer = c.writer
	}
	return &cp
}

func (c *Client) embed(ctx context.Context, q *Query) (*Query, error) {
	if q.KNN == nil || len(q.KNN.Vector) > 0 || q.KNN.Text == "" {
		return q, nil
	}
	emb, err := c.embedder.Embed(ctx, q.KNN.Text)
	if err != nil {
		return nil, fmt.Errorf("embed knn text: %w", err)
	}
	knn := *q.KNN
	knn.Vector = emb.Embedding
	q.KNN = &knn
	return q, nil
}

func (c *Client) execute(ctx context.Context, core, handler string, req *request.Request) ([]byte, error) {
	if c.cache == nil {
		return c.transport.Execute(ctx, core, handler, req) //nolint:wrapcheck // wrapped by caller
	}

	key := cache.Key(core, handler, req)
	body, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		c.cacheLookup("hit")
		return body, nil
	case errors.Is(err, cache.ErrMiss):
		c.cacheLookup("miss")
	default:
		c.cacheLookup("error")
		c.obs.logger.Warn("cache get failed", zap.String("core", core), zap.Error(err))
	}

	body, err = c.transport.Execute(ctx, core, handler, req)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.obs.logger.Warn("cache set failed", zap.String("core", core), zap.Error(err))
	}
	return body, nil
}

func (c *Client) cacheLookup(result string) {
	metrics.CacheTotal.WithLabelValues(result).Inc()
	c.obs.cacheLookup(result)
}

func recordParsed(q *Query, res *Result) {
	for _, n := range q.Components() {
		outcome := "absent"
		if res.Component(n.Name) != nil {
			outcome = "parsed"
		}
		metrics.ComponentParseTotal.WithLabelValues(string(n.Component.Type()), outcome).Inc()
	}
}

// noEmbedder fails KNN text queries when no embedder is configured.
func noEmbedder(_ context.Context, _ string) (EmbeddingResult, error) {
	return EmbeddingResult{}, fmt.Errorf("%w (use WithEmbedder for knn text queries)", domain.ErrEmbedderNotConfigured)
}
