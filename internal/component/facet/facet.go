// Package facet implements the facet set component: field, query,
// multi-query, range, pivot and interval facets, their request parameters
// and their response counts.
package facet

import (
	"errors"

	"github.com/kailas-cloud/solrkit/internal/component"
)

// Kind tags a facet type.
type Kind string

// Known facet kinds.
const (
	KindField      Kind = "field"
	KindQuery      Kind = "query"
	KindMultiQuery Kind = "multiquery"
	KindRange      Kind = "range"
	KindPivot      Kind = "pivot"
	KindInterval   Kind = "interval"
)

// Sort orders facet values.
type Sort string

const (
	SortCount Sort = "count"
	SortIndex Sort = "index"
)

// Method selects the faceting algorithm.
type Method string

const (
	MethodEnum Method = "enum"
	MethodFC   Method = "fc"
	MethodFCS  Method = "fcs"
)

// RangeOther requests counts outside the range buckets.
type RangeOther string

const (
	OtherBefore  RangeOther = "before"
	OtherAfter   RangeOther = "after"
	OtherBetween RangeOther = "between"
	OtherAll     RangeOther = "all"
	OtherNone    RangeOther = "none"
)

// RangeInclude controls bucket boundary inclusion.
type RangeInclude string

const (
	IncludeLower RangeInclude = "lower"
	IncludeUpper RangeInclude = "upper"
	IncludeEdge  RangeInclude = "edge"
	IncludeOuter RangeInclude = "outer"
	IncludeAll   RangeInclude = "all"
)

// Facet is a single facet of a FacetSet.
type Facet interface {
	Kind() Kind
	// Key labels the facet's result and is sent as the key local param.
	Key() string
	// Excludes are the filter tags the facet ignores.
	Excludes() []string
}

// base carries the key and the exclude tags shared by every facet kind.
type base struct {
	key      string
	excludes component.Excludes
}

// Key returns the facet key.
func (b *base) Key() string { return b.key }

// SetKey changes the facet key. Changing the key of a facet that is already
// part of a FacetSet is the caller's responsibility.
func (b *base) SetKey(key string) { b.key = key }

// Excludes returns the exclude tags.
func (b *base) Excludes() []string { return b.excludes.Values() }

// AddExclude adds exclude tags.
func (b *base) AddExclude(tags ...string) { b.excludes.Add(tags...) }

// RemoveExclude removes one exclude tag.
func (b *base) RemoveExclude(tag string) { b.excludes.Remove(tag) }

// ClearExcludes removes every exclude tag.
func (b *base) ClearExcludes() { b.excludes.Clear() }

func checkSortMethod(prefix string, sort Sort, method Method) error {
	return errors.Join(
		component.CheckEnum(prefix+"sort", sort, SortCount, SortIndex),
		component.CheckEnum(prefix+"method", method, MethodEnum, MethodFC, MethodFCS),
	)
}
