package grouping

import (
	"encoding/json"

	"github.com/kailas-cloud/solrkit/internal/document"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Group is a field, function or query group result.
type Group interface {
	Matches() *int64
}

// Result maps each configured field, query and function to its group.
type Result struct {
	keys   []string
	groups map[string]Group
}

// Group returns the group under key (field name, query or function), or nil.
func (r *Result) Group(key string) Group {
	if r == nil {
		return nil
	}
	return r.groups[key]
}

// FieldGroup returns the field or function group under key, or nil.
func (r *Result) FieldGroup(key string) *FieldGroup {
	g, _ := r.Group(key).(*FieldGroup)
	return g
}

// QueryGroup returns the query group under key, or nil.
func (r *Result) QueryGroup(key string) *QueryGroup {
	g, _ := r.Group(key).(*QueryGroup)
	return g
}

// Keys returns the group keys in configuration order.
func (r *Result) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Len returns the number of groups present.
func (r *Result) Len() int { return len(r.Keys()) }

func (r *Result) MarshalJSON() ([]byte, error) {
	m := wire.NewMap()
	for _, k := range r.Keys() {
		m.Append(k, r.groups[k])
	}
	return json.Marshal(m)
}

// FieldGroup holds the value groups of a field or function.
type FieldGroup struct {
	matches    *int64
	groupCount *int64
	values     []*ValueGroup
}

// Matches is the number of documents that matched the query.
func (g *FieldGroup) Matches() *int64 { return g.matches }

// NumberOfGroups is nil unless group.ngroups was requested.
func (g *FieldGroup) NumberOfGroups() *int64 { return g.groupCount }

// ValueGroups returns the groups in response order.
func (g *FieldGroup) ValueGroups() []*ValueGroup { return g.values }

func (g *FieldGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Matches *int64        `json:"matches,omitempty"`
		NGroups *int64        `json:"ngroups,omitempty"`
		Groups  []*ValueGroup `json:"groups"`
	}{g.matches, g.groupCount, g.values})
}

// DocList is a slice of documents with its counts.
type DocList struct {
	numFound *int64
	start    *int64
	maxScore *float64
	docs     []document.Document
}

func (d *DocList) NumFound() *int64               { return d.numFound }
func (d *DocList) Start() *int64                  { return d.start }
func (d *DocList) MaxScore() *float64             { return d.maxScore }
func (d *DocList) Documents() []document.Document { return d.docs }

func (d *DocList) marshal(extra ...any) ([]byte, error) {
	m := wire.NewMap(extra...)
	if d.numFound != nil {
		m.Append("numFound", *d.numFound)
	}
	if d.start != nil {
		m.Append("start", *d.start)
	}
	if d.maxScore != nil {
		m.Append("maxScore", *d.maxScore)
	}
	fields := make([]map[string]any, len(d.docs))
	for i, doc := range d.docs {
		fields[i] = doc.Fields()
	}
	m.Append("docs", fields)
	return json.Marshal(m)
}

// ValueGroup holds the documents sharing one group value.
type ValueGroup struct {
	DocList
	value any
}

// Value is the group value; nil for documents without one and in the simple
// format.
func (g *ValueGroup) Value() any { return g.value }

func (g *ValueGroup) MarshalJSON() ([]byte, error) { return g.marshal("groupValue", g.value) }

// QueryGroup holds the documents matching one group.query.
type QueryGroup struct {
	DocList
	matches *int64
}

func (g *QueryGroup) Matches() *int64 { return g.matches }

func (g *QueryGroup) MarshalJSON() ([]byte, error) {
	if g.matches != nil {
		return g.marshal("matches", *g.matches)
	}
	return g.marshal()
}
