package stats

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Parse reads stats.stats_fields. The result is empty, never nil, when the
// section is missing.
func Parse(_ component.ParseContext, c component.Component, data any) (any, error) {
	if _, err := component.As[*Stats](c); err != nil {
		return nil, err
	}
	raw, _ := wire.Lookup(data, "stats", "stats_fields")
	return ParseFields(raw), nil
}

// ParseFields reads a stats_fields named list. Pivot facet items carry the
// same structure under their own stats entry.
func ParseFields(raw any) *Result {
	res := &Result{}
	for _, p := range wire.Pairs(raw) {
		values, _ := wire.ToMap(p.Value)
		field := &FieldResult{name: p.Key, Values: Values{raw: values}}

		facets, _ := values.Get("facets")
		for _, fp := range wire.Pairs(facets) {
			fr := &FacetResult{field: fp.Key}
			for _, vp := range wire.Pairs(fp.Value) {
				stats, _ := wire.ToMap(vp.Value)
				fr.values = append(fr.values, &FacetValue{value: vp.Key, Values: Values{raw: stats}})
			}
			field.facets = append(field.facets, fr)
		}
		res.fields = append(res.fields, field)
	}
	return res
}
