package facet

import (
	"encoding/json"

	"github.com/kailas-cloud/solrkit/internal/component/stats"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Value is the result of a single facet.
type Value interface {
	Kind() Kind
}

// Result maps facet keys to facet results. Facets absent from the response
// have no entry.
type Result struct {
	keys   []string
	values map[string]Value
}

func newResult() *Result {
	return &Result{values: make(map[string]Value)}
}

func (r *Result) add(key string, v Value) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Facet returns the result under key.
func (r *Result) Facet(key string) (Value, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in facet registration order.
func (r *Result) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Len returns the number of facet results.
func (r *Result) Len() int { return len(r.Keys()) }

// Field returns the field facet result under key, or nil.
func (r *Result) Field(key string) *FieldResult { return as[*FieldResult](r, key) }

// Query returns the query facet result under key, or nil.
func (r *Result) Query(key string) *QueryResult { return as[*QueryResult](r, key) }

// MultiQuery returns the multi-query facet result under key, or nil.
func (r *Result) MultiQuery(key string) *MultiQueryResult { return as[*MultiQueryResult](r, key) }

// Range returns the range facet result under key, or nil.
func (r *Result) Range(key string) *RangeResult { return as[*RangeResult](r, key) }

// Pivot returns the pivot facet result under key, or nil.
func (r *Result) Pivot(key string) *PivotResult { return as[*PivotResult](r, key) }

// Interval returns the interval facet result under key, or nil.
func (r *Result) Interval(key string) *IntervalResult { return as[*IntervalResult](r, key) }

func as[T Value](r *Result, key string) T {
	v, _ := r.Facet(key)
	t, _ := v.(T)
	return t
}

// MarshalJSON encodes the results keyed by facet key in registration order.
func (r *Result) MarshalJSON() ([]byte, error) {
	m := wire.NewMap()
	for _, k := range r.Keys() {
		m.Append(k, r.values[k])
	}
	return json.Marshal(m)
}

// Count is a facet value with its document count.
type Count struct {
	Value string
	Count int64
}

type counts []Count

func (c counts) get(value string) (int64, bool) {
	for _, e := range c {
		if e.Value == value {
			return e.Count, true
		}
	}
	return 0, false
}

func (c counts) ordered() *wire.Map {
	m := wire.NewMap()
	for _, e := range c {
		m.Append(e.Value, e.Count)
	}
	return m
}

func parseCounts(raw any) counts {
	var out counts
	for _, p := range wire.Pairs(raw) {
		if n, ok := wire.Int(p.Value); ok {
			out = append(out, Count{Value: p.Key, Count: n})
		}
	}
	return out
}

// FieldResult holds term counts in response order.
type FieldResult struct {
	counts counts
}

func (*FieldResult) Kind() Kind { return KindField }

// Values returns the term counts in response order.
func (f *FieldResult) Values() []Count { return f.counts }

// Count returns the count of one term.
func (f *FieldResult) Count(value string) (int64, bool) { return f.counts.get(value) }

// Len returns the number of terms.
func (f *FieldResult) Len() int { return len(f.counts) }

func (f *FieldResult) MarshalJSON() ([]byte, error) { return json.Marshal(f.counts.ordered()) }

// QueryResult holds a query facet count.
type QueryResult struct {
	value int64
}

func (*QueryResult) Kind() Kind { return KindQuery }

// Value returns the number of matching documents.
func (q *QueryResult) Value() int64 { return q.value }

func (q *QueryResult) MarshalJSON() ([]byte, error) { return json.Marshal(q.value) }

// MultiQueryResult holds the counts of the children present in the response.
type MultiQueryResult struct {
	keys    []string
	queries map[string]*QueryResult
}

func (*MultiQueryResult) Kind() Kind { return KindMultiQuery }

// Query returns the child result under key, or nil.
func (m *MultiQueryResult) Query(key string) *QueryResult { return m.queries[key] }

// Keys returns the child keys present in the response.
func (m *MultiQueryResult) Keys() []string { return append([]string(nil), m.keys...) }

func (m *MultiQueryResult) MarshalJSON() ([]byte, error) {
	out := wire.NewMap()
	for _, k := range m.keys {
		out.Append(k, m.queries[k].value)
	}
	return json.Marshal(out)
}

// RangeResult holds range bucket counts and the optional outside counts.
type RangeResult struct {
	counts  counts
	before  *int64
	after   *int64
	between *int64
	start   string
	end     string
	gap     string
}

func (*RangeResult) Kind() Kind { return KindRange }

// Values returns the bucket counts keyed by lower bound.
func (r *RangeResult) Values() []Count { return r.counts }

// Count returns the count of the bucket starting at value.
func (r *RangeResult) Count(value string) (int64, bool) { return r.counts.get(value) }

// Before is nil unless facet.range.other included before.
func (r *RangeResult) Before() *int64 { return r.before }

// After is nil unless facet.range.other included after.
func (r *RangeResult) After() *int64 { return r.after }

// Between is nil unless facet.range.other included between.
func (r *RangeResult) Between() *int64 { return r.between }

func (r *RangeResult) Start() string { return r.start }
func (r *RangeResult) End() string   { return r.end }
func (r *RangeResult) Gap() string   { return r.gap }

func (r *RangeResult) MarshalJSON() ([]byte, error) {
	m := wire.NewMap("counts", r.counts.ordered())
	for _, p := range []struct {
		name string
		v    *int64
	}{{"before", r.before}, {"after", r.after}, {"between", r.between}} {
		if p.v != nil {
			m.Append(p.name, *p.v)
		}
	}
	if r.start != "" {
		m.Append("start", r.start)
	}
	if r.end != "" {
		m.Append("end", r.end)
	}
	if r.gap != "" {
		m.Append("gap", r.gap)
	}
	return json.Marshal(m)
}

// PivotResult holds the top level of a pivot tree.
type PivotResult struct {
	items []*PivotItem
}

func (*PivotResult) Kind() Kind { return KindPivot }

// Items returns the top-level pivot items.
func (p *PivotResult) Items() []*PivotItem { return p.items }

func (p *PivotResult) MarshalJSON() ([]byte, error) { return json.Marshal(p.items) }

// PivotItem is one node of a pivot tree.
type PivotItem struct {
	field string
	value any
	count int64
	pivot []*PivotItem
	stats *stats.Result
}

func (i *PivotItem) Field() string { return i.field }

// Value is the field value; its type follows the field type.
func (i *PivotItem) Value() any { return i.value }

func (i *PivotItem) Count() int64 { return i.count }

// Pivot returns the next level, empty at the leaves.
func (i *PivotItem) Pivot() []*PivotItem { return i.pivot }

// Stats is nil unless the pivot referenced stats fields.
func (i *PivotItem) Stats() *stats.Result { return i.stats }

func (i *PivotItem) MarshalJSON() ([]byte, error) {
	m := wire.NewMap("field", i.field, "value", i.value, "count", i.count)
	if len(i.pivot) > 0 {
		m.Append("pivot", i.pivot)
	}
	if i.stats != nil {
		m.Append("stats", i.stats)
	}
	return json.Marshal(m)
}

// IntervalResult holds one count per interval, keyed by the interval key or
// its literal value.
type IntervalResult struct {
	counts counts
}

func (*IntervalResult) Kind() Kind { return KindInterval }

// Values returns the interval counts in response order.
func (i *IntervalResult) Values() []Count { return i.counts }

// Count returns the count of one interval.
func (i *IntervalResult) Count(interval string) (int64, bool) { return i.counts.get(interval) }

func (i *IntervalResult) MarshalJSON() ([]byte, error) { return json.Marshal(i.counts.ordered()) }
