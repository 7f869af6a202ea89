package query

import (
	"encoding/json"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/component/debug"
	"github.com/kailas-cloud/solrkit/internal/component/facet"
	"github.com/kailas-cloud/solrkit/internal/component/grouping"
	"github.com/kailas-cloud/solrkit/internal/component/highlight"
	"github.com/kailas-cloud/solrkit/internal/component/mlt"
	"github.com/kailas-cloud/solrkit/internal/component/spellcheck"
	"github.com/kailas-cloud/solrkit/internal/component/stats"
	"github.com/kailas-cloud/solrkit/internal/document"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Result is a parsed select response.
type Result struct {
	status   *int64
	qtime    *int64
	numFound *int64
	start    *int64
	maxScore *float64
	docs     []document.Document

	names      []string
	components map[string]any
	data       any
}

// Status returns responseHeader.status, nil when the header was omitted.
func (r *Result) Status() *int64 { return r.status }

// QTime returns the engine-side query time in milliseconds.
func (r *Result) QTime() *int64 { return r.qtime }

// NumFound returns the total number of matches.
func (r *Result) NumFound() *int64 { return r.numFound }

// Start returns the offset of the first returned document.
func (r *Result) Start() *int64 { return r.start }

// MaxScore is only present when the score field was requested.
func (r *Result) MaxScore() *float64 { return r.maxScore }

// Documents returns the matched documents in response order.
func (r *Result) Documents() []document.Document { return r.docs }

// Component returns the parsed result of the component registered under
// name, or nil when the engine did not execute it.
func (r *Result) Component(name string) any { return r.components[name] }

// ComponentNames returns the names with a parsed result in registration order.
func (r *Result) ComponentNames() []string { return append([]string(nil), r.names...) }

// Data returns the raw decoded response.
func (r *Result) Data() any { return r.data }

func (r *Result) add(name string, v any) {
	if r.components == nil {
		r.components = make(map[string]any)
	}
	r.names = append(r.names, name)
	r.components[name] = v
}

// FacetSet returns the facet results of the default facet set.
func (r *Result) FacetSet() *facet.Result { return typed[*facet.Result](r, component.TypeFacetSet) }

// Highlighting returns the highlighting results.
func (r *Result) Highlighting() *highlight.Result {
	return typed[*highlight.Result](r, component.TypeHighlighting)
}

// Spellcheck returns the spellcheck results.
func (r *Result) Spellcheck() *spellcheck.Result {
	return typed[*spellcheck.Result](r, component.TypeSpellcheck)
}

// Grouping returns the grouping results.
func (r *Result) Grouping() *grouping.Result { return typed[*grouping.Result](r, component.TypeGrouping) }

// MoreLikeThis returns the more-like-this results.
func (r *Result) MoreLikeThis() *mlt.Result { return typed[*mlt.Result](r, component.TypeMoreLikeThis) }

// Stats returns the stats results.
func (r *Result) Stats() *stats.Result { return typed[*stats.Result](r, component.TypeStats) }

// Debug returns the debug results.
func (r *Result) Debug() *debug.Result { return typed[*debug.Result](r, component.TypeDebug) }

func typed[T any](r *Result, t component.Type) T {
	v, _ := r.components[string(t)].(T)
	return v
}

// MarshalJSON renders the result for gateway responses.
func (r *Result) MarshalJSON() ([]byte, error) {
	comps := wire.NewMap()
	for _, n := range r.names {
		comps.Append(n, r.components[n])
	}
	docs := make([]map[string]any, len(r.docs))
	for i, d := range r.docs {
		docs[i] = d.Fields()
	}
	return json.Marshal(wire.NewMap(
		"status", r.status,
		"qtime", r.qtime,
		"num_found", r.numFound,
		"start", r.start,
		"max_score", r.maxScore,
		"documents", docs,
		"components", comps,
	))
}
