package solrkit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	lp "github.com/kailas-cloud/solrkit/internal/localparams"
	"github.com/kailas-cloud/solrkit/internal/query/filter"
)

// Hit is a document decoded into T together with its score.
type Hit[T any] struct {
	Item  T
	Score float64
}

// SearchBuilder is a fluent builder for common select queries against one
// core. Use Query for anything it does not cover.
type SearchBuilder struct {
	client *Client
	core   string
	q      *Query

	where    []filter.Condition
	geoField string
	geoLat   float64
	geoLon   float64
	geoKm    float64
	geoSet   bool
	buildErr error
}

// Search starts a fluent query against core. An empty core means the
// client's default core.
func (c *Client) Search(core string) *SearchBuilder {
	if core == "" {
		core = c.core
	}
	return &SearchBuilder{client: c, core: core, q: NewQuery("")}
}

// Query sets the main query.
func (b *SearchBuilder) Query(q string) *SearchBuilder {
	b.q.Query = q
	return b
}

// Similar turns the search into a KNN search on field for text, embedded
// with the client's embedder.
func (b *SearchBuilder) Similar(field, text string, topK int) *SearchBuilder {
	b.q.KNN = &KNN{Field: field, Text: text, TopK: topK}
	return b
}

// Where adds an exact-match condition. Conditions are combined into one
// filter query.
func (b *SearchBuilder) Where(key, value string) *SearchBuilder {
	cond, err := filter.NewMatch(key, value)
	if err != nil {
		b.fail(err)
		return b
	}
	b.where = append(b.where, cond)
	return b
}

// Between adds an inclusive numeric range condition. Nil bounds are open.
func (b *SearchBuilder) Between(key string, lo, hi *float64) *SearchBuilder {
	r, err := filter.NewRangeFilter(nil, lo, nil, hi)
	if err != nil {
		b.fail(err)
		return b
	}
	cond, err := filter.NewRange(key, r)
	if err != nil {
		b.fail(err)
		return b
	}
	b.where = append(b.where, cond)
	return b
}

// Near restricts results to documents whose location field lies within the
// radius set by Km around lat,lon.
func (b *SearchBuilder) Near(field string, lat, lon float64) *SearchBuilder {
	b.geoField, b.geoLat, b.geoLon, b.geoSet = field, lat, lon, true
	return b
}

// Km sets the Near radius in kilometers.
func (b *SearchBuilder) Km(radius float64) *SearchBuilder {
	b.geoKm = radius
	return b
}

// Sort appends a sort clause.
func (b *SearchBuilder) Sort(field string, order Order) *SearchBuilder {
	b.q.AddSort(field, order)
	return b
}

// Fields restricts the returned fields.
func (b *SearchBuilder) Fields(fields ...string) *SearchBuilder {
	b.q.Fields = fields
	return b
}

// Limit sets rows.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.q.Rows = &n
	return b
}

// Offset sets start.
func (b *SearchBuilder) Offset(n int) *SearchBuilder {
	b.q.Start = &n
	return b
}

// Facet adds a field facet keyed by the field name.
func (b *SearchBuilder) Facet(field string) *SearchBuilder {
	if _, err := b.q.FacetSet().CreateField(field, field); err != nil {
		b.fail(err)
	}
	return b
}

// Select returns the underlying query for further configuration.
func (b *SearchBuilder) Select() *Query { return b.q }

func (b *SearchBuilder) fail(err error) {
	if b.buildErr == nil {
		b.buildErr = err
	}
}

func (b *SearchBuilder) finish() (*Query, error) {
	if b.buildErr != nil {
		return nil, b.buildErr
	}
	if len(b.where) > 0 && b.q.Filter("where") == nil {
		expr, err := filter.NewExpression(b.where, nil, nil)
		if err != nil {
			return nil, err //nolint:wrapcheck // already wrapped by filter
		}
		if _, err := b.q.CreateFilterExpression("where", expr); err != nil {
			return nil, err //nolint:wrapcheck // already wrapped by query
		}
	}
	if b.geoSet && b.q.Filter("geo") == nil {
		point := strconv.FormatFloat(b.geoLat, 'f', -1, 64) + "," + strconv.FormatFloat(b.geoLon, 'f', -1, 64)
		sp := b.q.Spatial()
		sp.Field, sp.Point = b.geoField, point
		km := b.geoKm
		sp.Distance = &km
		if _, err := b.q.CreateFilter("geo", lp.RenderParser("geofilt", "")); err != nil {
			return nil, err //nolint:wrapcheck // already wrapped by query
		}
	}
	return b.q, nil
}

// Do runs the query.
func (b *SearchBuilder) Do(ctx context.Context) (*Result, error) {
	q, err := b.finish()
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return b.client.SelectCore(ctx, b.core, q)
}

// Hits decodes the documents of res into T through their JSON form. The
// score field, when returned, fills Hit.Score.
func Hits[T any](res *Result) ([]Hit[T], error) {
	docs := res.Documents()
	hits := make([]Hit[T], 0, len(docs))
	for i, d := range docs {
		raw, err := json.Marshal(d.Fields())
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		var h Hit[T]
		if err := json.Unmarshal(raw, &h.Item); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if s, ok := d.Get("score"); ok {
			switch v := s.(type) {
			case float64:
				h.Score = v
			case int64:
				h.Score = float64(v)
			}
		}
		hits = append(hits, h)
	}
	return hits, nil
}
