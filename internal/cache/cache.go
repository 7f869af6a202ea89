// Package cache defines the raw response cache consulted before the engine.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/kailas-cloud/solrkit/internal/request"
)

// ErrMiss signals a key with no cached value.
var ErrMiss = errors.New("cache: miss")

// Cache stores raw engine response bodies.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key derives the cache key of a request sent to core's handler. Parameter
// order is significant, matching what the engine receives.
func Key(core, handler string, req *request.Request) string {
	d := xxhash.New()
	_, _ = d.WriteString(core)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(handler)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(req.Encode())
	return core + ":" + strconv.FormatUint(d.Sum64(), 16)
}
