package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// Build renders s into request parameters: the query-level parameters first,
// then each component in registration order through its registered builder.
// Every component is validated before anything is rendered.
func Build(reg *component.Registry, s *Select) (*request.Request, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	q := s.Query
	if s.KNN != nil {
		var err error
		if q, err = s.KNN.render(); err != nil {
			return nil, err
		}
	}
	if q == "" {
		q = DefaultQuery
	}

	for _, n := range s.components {
		if err := component.Validate(n.Component); err != nil {
			return nil, fmt.Errorf("component %q: %w", n.Name, err)
		}
	}

	req := request.New()
	req.Add("q", q)
	req.Add("q.op", string(s.Operator))
	req.Add("df", s.DefaultField)
	req.AddInt("start", s.Start)
	req.AddInt("rows", s.Rows)
	req.AddList("fl", s.Fields, ",")
	req.Add("sort", sortParam(s.sorts))
	for _, f := range s.filters {
		req.AddMulti("fq", f.render())
	}
	req.AddBool("omitHeader", s.OmitHeader)
	req.Add("wt", "json")
	req.Add("json.nl", s.writer().NamedList())

	for _, n := range s.components {
		b, err := reg.Builder(n.Component.Type())
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", n.Name, err)
		}
		if err := b.Build(n.Component, req); err != nil {
			return nil, fmt.Errorf("component %q: %w", n.Name, err)
		}
	}
	return req, nil
}

func sortParam(sorts []Sort) string {
	parts := make([]string, 0, len(sorts))
	for _, s := range sorts {
		order := s.Order
		if order == "" {
			order = Asc
		}
		parts = append(parts, s.Field+" "+string(order))
	}
	return strings.Join(parts, ",")
}
