package facet

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/domain"
)

// Field counts the distinct terms of a field.
type Field struct {
	base
	Field              string
	Prefix             string
	Contains           string
	ContainsIgnoreCase *bool
	Sort               Sort
	Limit              *int
	Offset             *int
	MinCount           *int
	Missing            *bool
	Method             Method
}

// NewField creates a field facet.
func NewField(key, field string) *Field {
	return &Field{base: base{key: key}, Field: field}
}

func (f *Field) Kind() Kind { return KindField }

// Validate rejects unknown sort and method values.
func (f *Field) Validate() error {
	return checkSortMethod("f."+f.Field+".facet.", f.Sort, f.Method)
}

// Query counts the documents matching an arbitrary query.
type Query struct {
	base
	Query string
}

// NewQuery creates a query facet.
func NewQuery(key, query string) *Query {
	return &Query{base: base{key: key}, Query: query}
}

func (q *Query) Kind() Kind { return KindQuery }

// MultiQuery groups query facets under one key. It has no wire form of its
// own: each child is sent as a facet.query. Exclude changes on the group are
// applied to every child.
type MultiQuery struct {
	base
	queries []*Query
}

// NewMultiQuery creates an empty multi-query facet.
func NewMultiQuery(key string) *MultiQuery {
	return &MultiQuery{base: base{key: key}}
}

func (m *MultiQuery) Kind() Kind { return KindMultiQuery }

// CreateQuery adds a child query facet.
func (m *MultiQuery) CreateQuery(key, query string, excludes ...string) (*Query, error) {
	q := NewQuery(key, query)
	q.AddExclude(excludes...)
	if err := m.AddQuery(q); err != nil {
		return nil, err
	}
	return q, nil
}

// AddQuery adds a child. Its key must be set and unique among the children.
// The group's excludes are merged into the child's own.
func (m *MultiQuery) AddQuery(q *Query) error {
	if q.Key() == "" {
		return fmt.Errorf("multiquery %q child: %w", m.key, domain.ErrMissingKey)
	}
	if existing := m.Query(q.Key()); existing != nil {
		if existing == q {
			return nil
		}
		return fmt.Errorf("multiquery %q child %q: %w", m.key, q.Key(), domain.ErrDuplicateKey)
	}
	q.AddExclude(m.excludes.Values()...)
	m.queries = append(m.queries, q)
	return nil
}

// AddQueries adds children in order, stopping at the first rejected one.
func (m *MultiQuery) AddQueries(qs ...*Query) error {
	for _, q := range qs {
		if err := m.AddQuery(q); err != nil {
			return err
		}
	}
	return nil
}

// Query returns the child registered under key, or nil.
func (m *MultiQuery) Query(key string) *Query {
	for _, q := range m.queries {
		if q.Key() == key {
			return q
		}
	}
	return nil
}

// Queries returns the children in order.
func (m *MultiQuery) Queries() []*Query {
	return append([]*Query(nil), m.queries...)
}

// RemoveQuery drops the child registered under key.
func (m *MultiQuery) RemoveQuery(key string) {
	for i, q := range m.queries {
		if q.Key() == key {
			m.queries = append(m.queries[:i], m.queries[i+1:]...)
			return
		}
	}
}

// ClearQueries drops every child.
func (m *MultiQuery) ClearQueries() { m.queries = nil }

// AddExclude adds tags to the group and to every child.
func (m *MultiQuery) AddExclude(tags ...string) {
	m.base.AddExclude(tags...)
	for _, q := range m.queries {
		q.AddExclude(tags...)
	}
}

// RemoveExclude removes a tag from the group and from every child.
func (m *MultiQuery) RemoveExclude(tag string) {
	m.base.RemoveExclude(tag)
	for _, q := range m.queries {
		q.RemoveExclude(tag)
	}
}

// ClearExcludes clears the tags of the group and of every child.
func (m *MultiQuery) ClearExcludes() {
	m.base.ClearExcludes()
	for _, q := range m.queries {
		q.ClearExcludes()
	}
}

// Range counts documents in consecutive buckets of a numeric or date field.
type Range struct {
	base
	Field    string
	Start    string
	End      string
	Gap      string
	HardEnd  *bool
	MinCount *int
	Other    []RangeOther
	Include  []RangeInclude
}

// NewRange creates a range facet.
func NewRange(key, field, start, end, gap string) *Range {
	return &Range{base: base{key: key}, Field: field, Start: start, End: end, Gap: gap}
}

func (r *Range) Kind() Kind { return KindRange }

// Validate rejects unknown other and include values.
func (r *Range) Validate() error {
	var errs []error
	for _, o := range r.Other {
		errs = append(errs, component.CheckEnum("f."+r.Field+".facet.range.other", o,
			OtherBefore, OtherAfter, OtherBetween, OtherAll, OtherNone))
	}
	for _, i := range r.Include {
		errs = append(errs, component.CheckEnum("f."+r.Field+".facet.range.include", i,
			IncludeLower, IncludeUpper, IncludeEdge, IncludeOuter, IncludeAll))
	}
	return errors.Join(errs...)
}

// Pivot counts nested combinations of several fields.
//
// A pivot that references stats cannot carry its own key: building it
// replaces the key with the comma-joined field list, which is also the key
// the engine reports the pivot under.
type Pivot struct {
	base
	Fields   []string
	MinCount *int
	Stats    []string
}

// NewPivot creates a pivot facet over fields.
func NewPivot(key string, fields ...string) *Pivot {
	return &Pivot{base: base{key: key}, Fields: fields}
}

func (p *Pivot) Kind() Kind { return KindPivot }

// SetFields replaces the pivot fields with a comma-separated list.
func (p *Pivot) SetFields(list string) *Pivot {
	p.Fields = component.SplitList(list)
	return p
}

// SetStats replaces the referenced stats tags with a comma-separated list.
func (p *Pivot) SetStats(list string) *Pivot {
	p.Stats = component.SplitList(list)
	return p
}

// Interval counts documents in arbitrary, possibly overlapping intervals.
type Interval struct {
	base
	Field string
	Set   []IntervalSet
}

// IntervalSet is one interval such as "[0,10)". A keyed interval is reported
// under Key instead of its literal value.
type IntervalSet struct {
	Key   string
	Value string
}

// NewInterval creates an interval facet.
func NewInterval(key, field string) *Interval {
	return &Interval{base: base{key: key}, Field: field}
}

func (i *Interval) Kind() Kind { return KindInterval }

// AddSet appends an unkeyed interval.
func (i *Interval) AddSet(value string) *Interval {
	i.Set = append(i.Set, IntervalSet{Value: value})
	return i
}

// AddKeyedSet appends an interval reported under key.
func (i *Interval) AddKeyedSet(key, value string) *Interval {
	i.Set = append(i.Set, IntervalSet{Key: key, Value: value})
	return i
}
