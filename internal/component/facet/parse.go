package facet

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/component/stats"
	"github.com/kailas-cloud/solrkit/internal/domain"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Parse maps facet_counts onto a Result. Facets the response lacks are
// skipped; the result is never nil.
func Parse(_ component.ParseContext, c component.Component, data any) (any, error) {
	s, err := component.As[*FacetSet](c)
	if err != nil {
		return nil, err
	}

	counts, _ := wire.Lookup(data, "facet_counts")
	res := newResult()
	for _, f := range s.facets {
		v, err := parseFacet(f, counts)
		if err != nil {
			return nil, err
		}
		if v != nil {
			res.add(f.Key(), v)
		}
	}
	return res, nil
}

func parseFacet(f Facet, counts any) (Value, error) {
	switch f := f.(type) {
	case *Field:
		raw, ok := wire.Lookup(counts, "facet_fields", f.Key())
		if !ok {
			return nil, nil
		}
		return &FieldResult{counts: parseCounts(raw)}, nil
	case *Query:
		return parseQuery(f, counts)
	case *MultiQuery:
		return parseMultiQuery(f, counts)
	case *Range:
		raw, ok := wire.Lookup(counts, "facet_ranges", f.Key())
		if !ok {
			return nil, nil
		}
		return parseRange(raw), nil
	case *Pivot:
		raw, ok := wire.Lookup(counts, "facet_pivot", f.Key())
		if !ok {
			return nil, nil
		}
		items, err := parsePivotItems(f.Key(), raw)
		if err != nil {
			return nil, err
		}
		return &PivotResult{items: items}, nil
	case *Interval:
		raw, ok := wire.Lookup(counts, "facet_intervals", f.Key())
		if !ok {
			return nil, nil
		}
		return &IntervalResult{counts: parseCounts(raw)}, nil
	default:
		return nil, domain.UnsupportedType("facet", string(f.Kind()))
	}
}

// parseQuery returns nil (not a typed nil) when the count is missing.
func parseQuery(q *Query, counts any) (Value, error) {
	r, err := queryResult(q, counts)
	if r == nil || err != nil {
		return nil, err
	}
	return r, nil
}

func queryResult(q *Query, counts any) (*QueryResult, error) {
	raw, ok := wire.Lookup(counts, "facet_queries", q.Key())
	if !ok {
		return nil, nil
	}
	n, ok := wire.Int(raw)
	if !ok {
		return nil, domain.Malformed("facet_queries."+q.Key(), raw)
	}
	return &QueryResult{value: n}, nil
}

func parseMultiQuery(m *MultiQuery, counts any) (Value, error) {
	res := &MultiQueryResult{queries: make(map[string]*QueryResult)}
	for _, q := range m.queries {
		r, err := queryResult(q, counts)
		if err != nil {
			return nil, err
		}
		if r != nil {
			res.keys = append(res.keys, q.Key())
			res.queries[q.Key()] = r
		}
	}
	if len(res.keys) == 0 {
		return nil, nil
	}
	return res, nil
}

func parseRange(raw any) *RangeResult {
	r := &RangeResult{}
	c, _ := wire.Lookup(raw, "counts")
	r.counts = parseCounts(c)
	r.before = wire.IntPtr(wire.Lookup(raw, "before"))
	r.after = wire.IntPtr(wire.Lookup(raw, "after"))
	r.between = wire.IntPtr(wire.Lookup(raw, "between"))
	r.start, _ = text(raw, "start")
	r.end, _ = text(raw, "end")
	r.gap, _ = text(raw, "gap")
	return r
}

func text(raw any, key string) (string, bool) {
	v, ok := wire.Lookup(raw, key)
	if !ok {
		return "", false
	}
	return wire.Text(v)
}

func parsePivotItems(path string, raw any) ([]*PivotItem, error) {
	arr, _ := raw.([]any)
	items := make([]*PivotItem, 0, len(arr))
	for _, entry := range arr {
		m, ok := wire.ToMap(entry)
		if !ok {
			continue
		}
		item := &PivotItem{}
		field, _ := m.Get("field")
		item.field, _ = wire.String(field)
		item.value, _ = m.Get("value")
		if c, ok := m.Get("count"); ok {
			if item.count, ok = wire.Int(c); !ok {
				return nil, domain.Malformed("facet_pivot."+path+".count", c)
			}
		}
		if sub, ok := m.Get("pivot"); ok {
			var err error
			if item.pivot, err = parsePivotItems(path, sub); err != nil {
				return nil, err
			}
		}
		if fields, ok := wire.Lookup(m, "stats", "stats_fields"); ok {
			item.stats = stats.ParseFields(fields)
		}
		items = append(items, item)
	}
	return items, nil
}
