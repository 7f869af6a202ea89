package solrkit

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL    string
	username   string
	password   string
	timeout    time.Duration
	httpClient *http.Client

	core   string
	writer wire.Writer

	cache      Cache
	cacheTTL   time.Duration
	redisAddrs []string
	redisPass  string

	embedder    Embedder
	concurrency int
	components  []registration

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

type registration struct {
	t component.Type
	b component.Builder
	p component.Parser
}

// WithURL sets the engine base URL, e.g. http://localhost:8983/solr.
func WithURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = baseURL
	})
}

// WithBasicAuth sends HTTP basic credentials with every request.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithTimeout sets the per-request timeout. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithHTTPClient replaces the HTTP client. WithTimeout is ignored then.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithCore sets the core used by Select, SelectAll and Ping.
func WithCore(core string) Option {
	return optionFunc(func(c *clientConfig) {
		c.core = core
	})
}

// WithWriter sets the named list encoding requested for queries that do
// not pick one. Default: WriterJSON.
func WithWriter(w Writer) Option {
	return optionFunc(func(c *clientConfig) {
		c.writer = w
	})
}

// WithCache serves repeated identical requests from cache for ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cache = cache
		c.cacheTTL = ttl
	})
}

// WithRedisCache caches responses in Redis for ttl. The client owns the
// connection and closes it on Close.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPass = password
		c.cacheTTL = ttl
	})
}

// WithEmbedder sets the provider that turns KNN query text into a vector.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithConcurrency bounds the number of requests SelectAll runs at once.
// Default: 4.
func WithConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.concurrency = n
	})
}

// WithComponent registers a builder and parser for a custom component type,
// or replaces those of a built-in one. A nil parser means the component has
// no response section.
func WithComponent(t ComponentType, b ComponentBuilder, p ComponentParser) Option {
	return optionFunc(func(c *clientConfig) {
		c.components = append(c.components, registration{t: t, b: b, p: p})
	})
}

// WithLogger enables structured logging for client operations.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
