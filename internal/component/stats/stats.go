// Package stats requests field statistics (min, max, mean, ...) and reads
// them back, optionally broken down per facet value.
package stats

import (
	"fmt"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/domain"
)

// Stats is the stats component.
type Stats struct {
	// Facets are fields every stats field is broken down by (stats.facet).
	Facets []string

	fields []*Field
}

// Field is one stats.field entry.
type Field struct {
	Name string
	// Facets break down this field only (f.<name>.stats.facet).
	Facets []string
	// Pivots are the tags pivot facets refer to with {!stats=...}.
	Pivots []string
}

// New returns an empty stats component.
func New() *Stats { return &Stats{} }

// Type implements component.Component.
func (s *Stats) Type() component.Type { return component.TypeStats }

// CreateField returns the field registered under name, creating it first
// when needed.
func (s *Stats) CreateField(name string) *Field {
	if f := s.Field(name); f != nil {
		return f
	}
	f := &Field{Name: name}
	s.fields = append(s.fields, f)
	return f
}

// AddField registers f. The name must be set and unique.
func (s *Stats) AddField(f *Field) error {
	if f.Name == "" {
		return fmt.Errorf("stats field: %w", domain.ErrMissingKey)
	}
	if existing := s.Field(f.Name); existing != nil {
		if existing == f {
			return nil
		}
		return fmt.Errorf("stats field %q: %w", f.Name, domain.ErrDuplicateKey)
	}
	s.fields = append(s.fields, f)
	return nil
}

// Field returns the field registered under name, or nil.
func (s *Stats) Field(name string) *Field {
	for _, f := range s.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Fields returns the registered fields in order.
func (s *Stats) Fields() []*Field {
	return append([]*Field(nil), s.fields...)
}

// RemoveField drops the field registered under name.
func (s *Stats) RemoveField(name string) {
	for i, f := range s.fields {
		if f.Name == name {
			s.fields = append(s.fields[:i], s.fields[i+1:]...)
			return
		}
	}
}

// ClearFields drops every field.
func (s *Stats) ClearFields() { s.fields = nil }
