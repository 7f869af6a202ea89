package stats

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/localparams"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// Build emits stats, stats.field, f.<field>.stats.facet and stats.facet.
func Build(c component.Component, req *request.Request) error {
	s, err := component.As[*Stats](c)
	if err != nil {
		return err
	}

	if len(s.fields) > 0 {
		req.Add("stats", "true")
		for _, f := range s.fields {
			req.AddMulti("stats.field", localparams.Render(f.Name, localparams.P("tag", f.Pivots...)))
			for _, facet := range f.Facets {
				req.AddMulti("f."+f.Name+".stats.facet", facet)
			}
		}
	}
	for _, facet := range s.Facets {
		req.AddMulti("stats.facet", facet)
	}
	return nil
}
