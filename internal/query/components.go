package query

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/component/debug"
	"github.com/kailas-cloud/solrkit/internal/component/dismax"
	"github.com/kailas-cloud/solrkit/internal/component/facet"
	"github.com/kailas-cloud/solrkit/internal/component/grouping"
	"github.com/kailas-cloud/solrkit/internal/component/highlight"
	"github.com/kailas-cloud/solrkit/internal/component/mlt"
	"github.com/kailas-cloud/solrkit/internal/component/spatial"
	"github.com/kailas-cloud/solrkit/internal/component/spellcheck"
	"github.com/kailas-cloud/solrkit/internal/component/stats"
)

// The accessors below register each built-in component under its type name
// on first use and return the same instance afterwards.

// FacetSet returns the facet set component.
func (s *Select) FacetSet() *facet.FacetSet {
	return getOrCreate(s, component.TypeFacetSet, facet.NewFacetSet)
}

// Highlighting returns the highlighting component.
func (s *Select) Highlighting() *highlight.Highlighting {
	return getOrCreate(s, component.TypeHighlighting, highlight.New)
}

// Spellcheck returns the spellcheck component.
func (s *Select) Spellcheck() *spellcheck.Spellcheck {
	return getOrCreate(s, component.TypeSpellcheck, spellcheck.New)
}

// Grouping returns the grouping component.
func (s *Select) Grouping() *grouping.Grouping {
	return getOrCreate(s, component.TypeGrouping, grouping.New)
}

// MoreLikeThis returns the more-like-this component.
func (s *Select) MoreLikeThis() *mlt.MoreLikeThis {
	return getOrCreate(s, component.TypeMoreLikeThis, mlt.New)
}

// Stats returns the stats component.
func (s *Select) Stats() *stats.Stats {
	return getOrCreate(s, component.TypeStats, stats.New)
}

// Debug returns the debug component.
func (s *Select) Debug() *debug.Debug {
	return getOrCreate(s, component.TypeDebug, debug.New)
}

// DisMax returns the dismax component.
func (s *Select) DisMax() *dismax.DisMax {
	return getOrCreate(s, component.TypeDisMax, dismax.New)
}

// EdisMax returns the edismax component.
func (s *Select) EdisMax() *dismax.EdisMax {
	return getOrCreate(s, component.TypeEdisMax, dismax.NewEdisMax)
}

// Spatial returns the spatial component, creating an empty one first.
func (s *Select) Spatial() *spatial.Spatial {
	return getOrCreate(s, component.TypeSpatial, func() *spatial.Spatial { return &spatial.Spatial{} })
}

func getOrCreate[T component.Component](s *Select, t component.Type, create func() T) T {
	if c, ok := s.Component(string(t)).(T); ok {
		return c
	}
	c := create()
	s.SetComponent(string(t), c)
	return c
}
