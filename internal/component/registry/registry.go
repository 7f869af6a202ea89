// Package registry wires every built-in component kind into a
// component.Registry.
package registry

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

// Default returns a registry with every built-in component kind.
func Default() *component.Registry {
	r := component.NewRegistry()
	r.Register(component.TypeFacetSet, component.BuilderFunc(facet.Build), component.ParserFunc(facet.Parse))
	r.Register(component.TypeHighlighting, component.BuilderFunc(highlight.Build), component.ParserFunc(highlight.Parse))
	r.Register(component.TypeSpellcheck, component.BuilderFunc(spellcheck.Build), component.ParserFunc(spellcheck.Parse))
	r.Register(component.TypeGrouping, component.BuilderFunc(grouping.Build), component.ParserFunc(grouping.Parse))
	r.Register(component.TypeMoreLikeThis, component.BuilderFunc(mlt.Build), component.ParserFunc(mlt.Parse))
	r.Register(component.TypeStats, component.BuilderFunc(stats.Build), component.ParserFunc(stats.Parse))
	r.Register(component.TypeDebug, component.BuilderFunc(debug.Build), component.ParserFunc(debug.Parse))
	r.Register(component.TypeDisMax, component.BuilderFunc(dismax.Build), nil)
	r.Register(component.TypeEdisMax, component.BuilderFunc(dismax.BuildEdisMax), nil)
	r.Register(component.TypeSpatial, component.BuilderFunc(spatial.Build), nil)
	return r
}
