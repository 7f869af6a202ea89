// Package solr is the HTTP transport to the search engine: it posts encoded
// request parameters to a core's handler and returns the response body.
package solr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrkit/internal/metrics"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// HeaderRequestID carries the per-call request id.
const HeaderRequestID = "X-Request-ID"

const defaultTimeout = 30 * time.Second

// Config holds the engine connection settings.
type Config struct {
	// BaseURL is the engine root, e.g. http://localhost:8983/solr.
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Transport sends requests to the engine.
type Transport struct {
	base     *url.URL
	client   *http.Client
	username string
	password string
	logger   *zap.Logger
}

// New creates a transport for cfg.
func New(cfg Config) (*Transport, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", cfg.BaseURL)
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Transport{
		base:     base,
		client:   client,
		username: cfg.Username,
		password: cfg.Password,
		logger:   logger,
	}, nil
}

// Execute posts req as a form body to {base}/{core}/{handler} and returns the
// decompressed response body.
func (t *Transport) Execute(ctx context.Context, core, handler string, req *request.Request) ([]byte, error) {
	endpoint := t.endpoint(core, handler)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(req.Encode()))
	if err != nil {
		return nil, &Error{Op: OpSelect, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := t.do(httpReq, core, handler)
	if err != nil {
		return nil, &Error{Op: OpSelect, Err: err}
	}
	return body, nil
}

// Ping calls the core's admin ping handler.
func (t *Transport) Ping(ctx context.Context, core string) error {
	endpoint := t.endpoint(core, "admin/ping") + "?wt=json"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return &Error{Op: OpPing, Err: err}
	}
	if _, err := t.do(httpReq, core, "admin/ping"); err != nil {
		return &Error{Op: OpPing, Err: err}
	}
	return nil
}

func (t *Transport) do(httpReq *http.Request, core, handler string) ([]byte, error) {
	id := uuid.NewString()
	httpReq.Header.Set(HeaderRequestID, id)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Accept-Encoding", "gzip")
	if t.username != "" {
		httpReq.SetBasicAuth(t.username, t.password)
	}

	log := t.logger.With(
		zap.String("request_id", id),
		zap.String("core", core),
		zap.String("handler", handler),
	)

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		metrics.EngineErrorsTotal.WithLabelValues(core, "transport").Inc()
		log.Warn("engine request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	duration := time.Since(start)
	metrics.EngineRequestsTotal.WithLabelValues(core, handler, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.EngineRequestDuration.WithLabelValues(core, handler).Observe(duration.Seconds())
	if err != nil {
		metrics.EngineErrorsTotal.WithLabelValues(core, "read").Inc()
		log.Warn("read engine response", zap.Error(err))
		return nil, fmt.Errorf("read response: %w", err)
	}
	metrics.EngineResponseBytes.WithLabelValues(core).Observe(float64(len(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := statusError(resp.StatusCode, body)
		metrics.EngineErrorsTotal.WithLabelValues(core, "status").Inc()
		log.Warn("engine returned error status",
			zap.Int("status", se.StatusCode),
			zap.String("message", se.Message),
		)
		return nil, se
	}

	log.Debug("engine request done",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", duration),
	)
	return body, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return io.ReadAll(resp.Body) //nolint:wrapcheck // wrapped by caller
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()
	return io.ReadAll(zr) //nolint:wrapcheck // wrapped by caller
}

func (t *Transport) endpoint(core, handler string) string {
	return t.base.JoinPath(core, handler).String()
}
