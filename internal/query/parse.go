package query

import (
	"fmt"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Parse maps decoded response data onto a Result. Components are parsed in
// registration order; those without a parser, or whose section the engine
// left out, are absent from the result.
func Parse(reg *component.Registry, s *Select, data any) (*Result, error) {
	ctx := component.ParseContext{Documents: s.Documents, Writer: s.writer()}
	res := &Result{data: data}

	res.status = wire.IntPtr(wire.Lookup(data, "responseHeader", "status"))
	res.qtime = wire.IntPtr(wire.Lookup(data, "responseHeader", "QTime"))
	if resp, ok := wire.Lookup(data, "response"); ok {
		res.numFound = wire.IntPtr(wire.Lookup(resp, "numFound"))
		res.start = wire.IntPtr(wire.Lookup(resp, "start"))
		res.maxScore = wire.FloatPtr(wire.Lookup(resp, "maxScore"))
		docs, _ := wire.Lookup(resp, "docs")
		res.docs = ctx.DocumentList(docs)
	}

	for _, n := range s.components {
		p, ok, err := reg.Parser(n.Component.Type())
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", n.Name, err)
		}
		if !ok {
			continue
		}
		v, err := p.Parse(ctx, n.Component, data)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", n.Name, err)
		}
		if v == nil {
			continue
		}
		res.add(n.Name, v)
	}
	return res, nil
}
