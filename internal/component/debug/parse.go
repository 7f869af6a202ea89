package debug

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// keyTime is the reserved key that sits next to named children at both
// levels of the timing tree.
const keyTime = "time"

// Parse reads the debug section, or returns nil when it is missing.
func Parse(_ component.ParseContext, c component.Component, data any) (any, error) {
	if _, err := component.As[*Debug](c); err != nil {
		return nil, err
	}
	section, ok := wire.Lookup(data, "debug")
	if !ok {
		return nil, nil
	}

	res := &Result{
		queryString: text(section, "querystring"),
		parsedQuery: text(section, "parsedquery"),
		queryParser: text(section, "QParser"),
		otherQuery:  text(section, "otherQuery"),
	}
	explain, _ := wire.Lookup(section, "explain")
	res.explain = parseExplanations(explain)
	other, _ := wire.Lookup(section, "explainOther")
	res.explainOther = parseExplanations(other)
	if timing, ok := wire.Lookup(section, "timing"); ok {
		res.timing = parseTiming(timing)
	}
	return res, nil
}

func text(raw any, key string) string {
	v, _ := wire.Lookup(raw, key)
	s, _ := wire.Text(v)
	return s
}

func parseExplanations(raw any) []*Explanation {
	var out []*Explanation
	for _, p := range wire.Pairs(raw) {
		out = append(out, &Explanation{key: p.Key, Detail: *parseDetail(p.Value)})
	}
	return out
}

// parseDetail accepts a structured node or, without debug.explain.structured,
// the plain text explanation.
func parseDetail(raw any) *Detail {
	if s, ok := raw.(string); ok {
		return &Detail{description: s}
	}
	d := &Detail{
		match:       wire.BoolPtr(wire.Lookup(raw, "match")),
		value:       wire.FloatPtr(wire.Lookup(raw, "value")),
		description: text(raw, "description"),
	}
	children, _ := wire.Lookup(raw, "details")
	arr, _ := children.([]any)
	for _, c := range arr {
		d.details = append(d.details, parseDetail(c))
	}
	return d
}

func parseTiming(raw any) *Timing {
	t := &Timing{}
	for _, p := range wire.Pairs(raw) {
		if p.Key == keyTime {
			t.time = wire.FloatPtr(p.Value, true)
			continue
		}
		t.phases = append(t.phases, parsePhase(p.Key, p.Value))
	}
	return t
}

func parsePhase(name string, raw any) *Phase {
	ph := &Phase{name: name}
	for _, p := range wire.Pairs(raw) {
		if p.Key == keyTime {
			ph.time = wire.FloatPtr(p.Value, true)
			continue
		}
		// Per-component entries are {time: n} objects, or bare numbers.
		v := p.Value
		if t, ok := wire.Lookup(v, keyTime); ok {
			v = t
		}
		if f, ok := wire.Float(v); ok {
			ph.timings = append(ph.timings, wire.Pair{Key: p.Key, Value: f})
		}
	}
	return ph
}
