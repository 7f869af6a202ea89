package highlight

import (
	"encoding/json"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Result holds snippets keyed by document unique key.
type Result struct {
	docs []*Document
}

// Document returns the snippets of one document, or nil.
func (r *Result) Document(key string) *Document {
	if r == nil {
		return nil
	}
	for _, d := range r.docs {
		if d.key == key {
			return d
		}
	}
	return nil
}

// Documents returns every document in response order.
func (r *Result) Documents() []*Document {
	if r == nil {
		return nil
	}
	return r.docs
}

// Len returns the number of documents.
func (r *Result) Len() int { return len(r.Documents()) }

func (r *Result) MarshalJSON() ([]byte, error) {
	m := wire.NewMap()
	for _, d := range r.Documents() {
		fields := wire.NewMap()
		for _, f := range d.fields {
			fields.Append(f.Key, f.Value)
		}
		m.Append(d.key, fields)
	}
	return json.Marshal(m)
}

// Document holds the snippets of one document.
type Document struct {
	key    string
	fields []wire.Pair
}

// Key returns the document unique key.
func (d *Document) Key() string { return d.key }

// Field returns the snippets of a field; nil when the field has none.
func (d *Document) Field(name string) []string {
	for _, f := range d.fields {
		if f.Key == name {
			s, _ := f.Value.([]string)
			return s
		}
	}
	return nil
}

// Fields returns the highlighted field names in response order.
func (d *Document) Fields() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Key
	}
	return names
}

// Parse reads the highlighting section. The result is empty, never nil,
// when the section is missing.
func Parse(_ component.ParseContext, c component.Component, data any) (any, error) {
	if _, err := component.As[*Highlighting](c); err != nil {
		return nil, err
	}
	res := &Result{}
	raw, _ := wire.Lookup(data, "highlighting")
	for _, dp := range wire.Pairs(raw) {
		doc := &Document{key: dp.Key}
		for _, fp := range wire.Pairs(dp.Value) {
			doc.fields = append(doc.fields, wire.Pair{Key: fp.Key, Value: snippets(fp.Value)})
		}
		res.docs = append(res.docs, doc)
	}
	return res, nil
}

func snippets(raw any) []string {
	if s, ok := raw.(string); ok {
		return []string{s}
	}
	return wire.Strings(raw)
}
