package debug

import (
	"encoding/json"

	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Result is the debug section.
type Result struct {
	queryString  string
	parsedQuery  string
	queryParser  string
	otherQuery   string
	explain      []*Explanation
	explainOther []*Explanation
	timing       *Timing
}

func (r *Result) QueryString() string { return r.queryString }
func (r *Result) ParsedQuery() string { return r.parsedQuery }
func (r *Result) QueryParser() string { return r.queryParser }
func (r *Result) OtherQuery() string  { return r.otherQuery }

// Explain returns the explanation of every result document.
func (r *Result) Explain() []*Explanation { return r.explain }

// ExplainOther returns the explanations for the explainOther query.
func (r *Result) ExplainOther() []*Explanation { return r.explainOther }

// Document returns the explanation of one result document, or nil.
func (r *Result) Document(key string) *Explanation {
	for _, e := range r.explain {
		if e.key == key {
			return e
		}
	}
	return nil
}

// Timing is nil when the engine did not report timings.
func (r *Result) Timing() *Timing { return r.timing }

func (r *Result) MarshalJSON() ([]byte, error) {
	explain := func(list []*Explanation) *wire.Map {
		m := wire.NewMap()
		for _, e := range list {
			m.Append(e.key, e)
		}
		return m
	}
	m := wire.NewMap(
		"querystring", r.queryString,
		"parsedquery", r.parsedQuery,
		"QParser", r.queryParser,
		"explain", explain(r.explain),
	)
	if r.otherQuery != "" {
		m.Append("otherQuery", r.otherQuery)
		m.Append("explainOther", explain(r.explainOther))
	}
	if r.timing != nil {
		m.Append("timing", r.timing)
	}
	return json.Marshal(m)
}

// Detail is a node of an explanation tree.
type Detail struct {
	match       *bool
	value       *float64
	description string
	details     []*Detail
}

// Match is nil when the explanation did not say.
func (d *Detail) Match() *bool { return d.match }

// Value is the score contribution of this node.
func (d *Detail) Value() *float64 { return d.value }

func (d *Detail) Description() string { return d.description }

// Details returns the child nodes.
func (d *Detail) Details() []*Detail { return d.details }

func (d *Detail) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Match       *bool     `json:"match,omitempty"`
		Value       *float64  `json:"value,omitempty"`
		Description string    `json:"description"`
		Details     []*Detail `json:"details,omitempty"`
	}{d.match, d.value, d.description, d.details})
}

// Explanation is the explanation tree of one document.
type Explanation struct {
	Detail
	key string
}

// Key returns the document unique key.
func (e *Explanation) Key() string { return e.key }

// Timing is the overall time plus the named phases (prepare, process).
type Timing struct {
	time   *float64
	phases []*Phase
}

// Time is the total time in milliseconds.
func (t *Timing) Time() *float64 { return t.time }

// Phases returns the phases in response order.
func (t *Timing) Phases() []*Phase { return t.phases }

// Phase returns one phase, or nil.
func (t *Timing) Phase(name string) *Phase {
	for _, p := range t.phases {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (t *Timing) MarshalJSON() ([]byte, error) {
	m := wire.NewMap()
	if t.time != nil {
		m.Append("time", *t.time)
	}
	for _, p := range t.phases {
		m.Append(p.name, p)
	}
	return json.Marshal(m)
}

// Phase is a timing phase broken down per search component.
type Phase struct {
	name    string
	time    *float64
	timings []wire.Pair
}

func (p *Phase) Name() string   { return p.name }
func (p *Phase) Time() *float64 { return p.time }

// Timings returns the per-component times in response order; values are
// float64 milliseconds.
func (p *Phase) Timings() []wire.Pair { return p.timings }

// Timing returns the time of one component.
func (p *Phase) Timing(class string) (float64, bool) {
	for _, t := range p.timings {
		if t.Key == class {
			f, ok := t.Value.(float64)
			return f, ok
		}
	}
	return 0, false
}

func (p *Phase) MarshalJSON() ([]byte, error) {
	m := wire.NewMap()
	if p.time != nil {
		m.Append("time", *p.time)
	}
	for _, t := range p.timings {
		m.Append(t.Key, wire.NewMap("time", t.Value))
	}
	return json.Marshal(m)
}
