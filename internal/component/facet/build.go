package facet

import (
	"strings"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/domain"
	lp "github.com/kailas-cloud/solrkit/internal/localparams"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// Build emits the global facet options once and then every facet in
// registration order. A set without facets emits nothing.
func Build(c component.Component, req *request.Request) error {
	s, err := component.As[*FacetSet](c)
	if err != nil {
		return err
	}
	if len(s.facets) == 0 {
		return nil
	}
	if err := s.Validate(); err != nil {
		return err
	}

	req.Add("facet", "true")
	req.Add("facet.sort", string(s.Sort))
	req.Add("facet.prefix", s.Prefix)
	req.Add("facet.contains", s.Contains)
	req.AddBool("facet.contains.ignoreCase", s.ContainsIgnoreCase)
	req.AddBool("facet.missing", s.Missing)
	req.AddInt("facet.mincount", s.MinCount)
	req.AddInt("facet.limit", s.Limit)
	req.Add("facet.method", string(s.Method))

	for _, f := range s.facets {
		if err := buildFacet(f, req); err != nil {
			return err
		}
	}
	return nil
}

func buildFacet(f Facet, req *request.Request) error {
	switch f := f.(type) {
	case *Field:
		buildField(f, req)
	case *Query:
		buildQuery(f, req)
	case *MultiQuery:
		for _, q := range f.queries {
			buildQuery(q, req)
		}
	case *Range:
		buildRange(f, req)
	case *Pivot:
		buildPivot(f, req)
	case *Interval:
		buildInterval(f, req)
	default:
		return domain.UnsupportedType("facet", string(f.Kind()))
	}
	return nil
}

func keyed(value string, f Facet) string {
	return lp.Render(value, lp.P("key", f.Key()), lp.P("ex", f.Excludes()...))
}

func buildField(f *Field, req *request.Request) {
	req.AddMulti("facet.field", keyed(f.Field, f))

	prefix := "f." + f.Field + ".facet."
	req.AddInt(prefix+"limit", f.Limit)
	req.Add(prefix+"sort", string(f.Sort))
	req.Add(prefix+"prefix", f.Prefix)
	req.Add(prefix+"contains", f.Contains)
	req.AddBool(prefix+"contains.ignoreCase", f.ContainsIgnoreCase)
	req.AddInt(prefix+"offset", f.Offset)
	req.AddInt(prefix+"mincount", f.MinCount)
	req.AddBool(prefix+"missing", f.Missing)
	req.Add(prefix+"method", string(f.Method))
}

func buildQuery(q *Query, req *request.Request) {
	req.AddMulti("facet.query", keyed(q.Query, q))
}

func buildRange(r *Range, req *request.Request) {
	req.AddMulti("facet.range", keyed(r.Field, r))

	prefix := "f." + r.Field + ".facet."
	req.Add(prefix+"range.start", r.Start)
	req.Add(prefix+"range.end", r.End)
	req.Add(prefix+"range.gap", r.Gap)
	req.AddBool(prefix+"range.hardend", r.HardEnd)
	req.AddInt(prefix+"mincount", r.MinCount)
	for _, o := range r.Other {
		req.AddMulti(prefix+"range.other", string(o))
	}
	for _, i := range r.Include {
		req.AddMulti(prefix+"range.include", string(i))
	}
}

// buildPivot renders {!stats=...} instead of {!key=...} when the pivot
// references stats, and rekeys the facet to its field list.
func buildPivot(p *Pivot, req *request.Request) {
	fields := strings.Join(p.Fields, ",")
	stats := strings.Join(p.Stats, ",")

	var value string
	if stats != "" {
		p.SetKey(fields)
		value = lp.Render(fields, lp.P("stats", stats), lp.P("ex", p.Excludes()...))
	} else {
		value = keyed(fields, p)
	}
	req.AddMulti("facet.pivot", value)
	req.AddInt("facet.pivot.mincount", p.MinCount)
}

// buildInterval prefixes keyed sets with a literal {!key="..."}; the quotes
// are part of the wire syntax.
func buildInterval(i *Interval, req *request.Request) {
	req.AddMulti("facet.interval", keyed(i.Field, i))

	name := "f." + i.Field + ".facet.interval.set"
	for _, s := range i.Set {
		value := s.Value
		if s.Key != "" {
			value = `{!key="` + s.Key + `"}` + value
		}
		req.AddMulti(name, value)
	}
}
