package stats

import (
	"encoding/json"

	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Result holds the stats of every field present in the response.
type Result struct {
	fields []*FieldResult
}

// Field returns the stats of name, or nil when the engine returned none.
func (r *Result) Field(name string) *FieldResult {
	if r == nil {
		return nil
	}
	for _, f := range r.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

// Fields returns every field result in response order.
func (r *Result) Fields() []*FieldResult {
	if r == nil {
		return nil
	}
	return r.fields
}

// Len returns the number of fields.
func (r *Result) Len() int { return len(r.Fields()) }

// MarshalJSON encodes the result as {field: stats}.
func (r *Result) MarshalJSON() ([]byte, error) {
	m := wire.NewMap()
	for _, f := range r.Fields() {
		m.Append(f.name, f)
	}
	return json.Marshal(m)
}

// FieldResult is the stats of one field.
type FieldResult struct {
	Values
	name   string
	facets []*FacetResult
}

// Name returns the field name.
func (f *FieldResult) Name() string { return f.name }

// Facets returns the per-facet breakdowns, if any were requested.
func (f *FieldResult) Facets() []*FacetResult { return f.facets }

// Facet returns the breakdown by field, or nil.
func (f *FieldResult) Facet(field string) *FacetResult {
	for _, fr := range f.facets {
		if fr.field == field {
			return fr
		}
	}
	return nil
}

// MarshalJSON encodes the values plus the facet breakdowns.
func (f *FieldResult) MarshalJSON() ([]byte, error) {
	m := f.Values.ordered()
	if len(f.facets) > 0 {
		facets := wire.NewMap()
		for _, fr := range f.facets {
			values := wire.NewMap()
			for _, v := range fr.values {
				values.Append(v.value, v.Values.ordered())
			}
			facets.Append(fr.field, values)
		}
		m.Append("facets", facets)
	}
	return json.Marshal(m)
}

// FacetResult is a stats breakdown by one facet field.
type FacetResult struct {
	field  string
	values []*FacetValue
}

// Field returns the facet field.
func (f *FacetResult) Field() string { return f.field }

// Values returns the per-value stats in response order.
func (f *FacetResult) Values() []*FacetValue { return f.values }

// FacetValue is the stats of the documents sharing one facet value.
type FacetValue struct {
	Values
	value string
}

// Value returns the facet value.
func (v *FacetValue) Value() string { return v.value }

// Values is a set of statistics. Absent statistics are nil, never zero.
type Values struct {
	raw *wire.Map
}

// Get returns any statistic by its wire name.
func (v Values) Get(name string) (any, bool) { return v.raw.Get(name) }

// Min is a number, string or date depending on the field type.
func (v Values) Min() any {
	x, _ := v.raw.Get("min")
	return x
}

// Max is a number, string or date depending on the field type.
func (v Values) Max() any {
	x, _ := v.raw.Get("max")
	return x
}

func (v Values) Sum() *float64          { return wire.FloatPtr(v.raw.Get("sum")) }
func (v Values) Count() *int64          { return wire.IntPtr(v.raw.Get("count")) }
func (v Values) Missing() *int64        { return wire.IntPtr(v.raw.Get("missing")) }
func (v Values) SumOfSquares() *float64 { return wire.FloatPtr(v.raw.Get("sumOfSquares")) }
func (v Values) Mean() *float64         { return wire.FloatPtr(v.raw.Get("mean")) }
func (v Values) Stddev() *float64       { return wire.FloatPtr(v.raw.Get("stddev")) }
func (v Values) CountDistinct() *int64  { return wire.IntPtr(v.raw.Get("countDistinct")) }
func (v Values) Cardinality() *int64    { return wire.IntPtr(v.raw.Get("cardinality")) }

// DistinctValues returns the distinct values when calcdistinct was requested.
func (v Values) DistinctValues() []any {
	x, _ := v.raw.Get("distinctValues")
	arr, _ := x.([]any)
	return arr
}

// Percentiles returns percentile/value pairs in response order.
func (v Values) Percentiles() []wire.Pair {
	x, _ := v.raw.Get("percentiles")
	return wire.Pairs(x)
}

func (v Values) ordered() *wire.Map {
	m := wire.NewMap()
	for _, p := range v.raw.Pairs() {
		if p.Key == "facets" {
			continue
		}
		m.Append(p.Key, p.Value)
	}
	return m
}
