// Package document defines the record type that list-bearing results
// (grouping doc lists, more-like-this matches, main result) are made of.
package document

// Document is a single matched record.
type Document interface {
	// Fields returns the stored fields of the record.
	Fields() map[string]any
	// Get returns one field value.
	Get(name string) (any, bool)
}

// Factory constructs a Document from its decoded fields. Callers inject their
// own to bind results to a domain type.
type Factory func(fields map[string]any) Document

// Fields is the default Document: a plain field map.
type Fields map[string]any

// New is the default Factory.
func New(fields map[string]any) Document {
	return Fields(fields)
}

// Fields returns f itself.
func (f Fields) Fields() map[string]any { return f }

// Get returns one field value.
func (f Fields) Get(name string) (any, bool) {
	v, ok := f[name]
	return v, ok
}

// ID returns the "id" field when it is a string.
func (f Fields) ID() string {
	s, _ := f["id"].(string)
	return s
}
