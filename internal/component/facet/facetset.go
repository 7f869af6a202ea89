package facet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/domain"
)

// FacetSet is the facet component: global facet options plus the facets in
// registration order.
type FacetSet struct {
	Sort               Sort
	Prefix             string
	Contains           string
	ContainsIgnoreCase *bool
	Missing            *bool
	MinCount           *int
	Limit              *int
	Method             Method

	facets []Facet
}

// NewFacetSet returns an empty facet set.
func NewFacetSet() *FacetSet { return &FacetSet{} }

// Type implements component.Component.
func (s *FacetSet) Type() component.Type { return component.TypeFacetSet }

// AddFacet registers f. The key must be set and not taken by a different
// facet. A rejected facet leaves the set unchanged.
func (s *FacetSet) AddFacet(f Facet) error {
	if f.Key() == "" {
		return fmt.Errorf("%s facet: %w", f.Kind(), domain.ErrMissingKey)
	}
	if existing := s.Facet(f.Key()); existing != nil {
		if existing == f {
			return nil
		}
		return fmt.Errorf("facet %q: %w", f.Key(), domain.ErrDuplicateKey)
	}
	s.facets = append(s.facets, f)
	return nil
}

// Facet returns the facet registered under key, or nil.
func (s *FacetSet) Facet(key string) Facet {
	for _, f := range s.facets {
		if f.Key() == key {
			return f
		}
	}
	return nil
}

// Facets returns the facets in registration order.
func (s *FacetSet) Facets() []Facet {
	return append([]Facet(nil), s.facets...)
}

// RemoveFacet drops the facet registered under key.
func (s *FacetSet) RemoveFacet(key string) {
	for i, f := range s.facets {
		if f.Key() == key {
			s.facets = append(s.facets[:i], s.facets[i+1:]...)
			return
		}
	}
}

// ClearFacets drops every facet.
func (s *FacetSet) ClearFacets() { s.facets = nil }

// CreateField registers a new field facet.
func (s *FacetSet) CreateField(key, field string) (*Field, error) {
	f := NewField(key, field)
	if err := s.AddFacet(f); err != nil {
		return nil, err
	}
	return f, nil
}

// CreateQuery registers a new query facet.
func (s *FacetSet) CreateQuery(key, query string) (*Query, error) {
	q := NewQuery(key, query)
	if err := s.AddFacet(q); err != nil {
		return nil, err
	}
	return q, nil
}

// CreateMultiQuery registers a new, empty multi-query facet.
func (s *FacetSet) CreateMultiQuery(key string) (*MultiQuery, error) {
	m := NewMultiQuery(key)
	if err := s.AddFacet(m); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateRange registers a new range facet.
func (s *FacetSet) CreateRange(key, field, start, end, gap string) (*Range, error) {
	r := NewRange(key, field, start, end, gap)
	if err := s.AddFacet(r); err != nil {
		return nil, err
	}
	return r, nil
}

// CreatePivot registers a new pivot facet.
func (s *FacetSet) CreatePivot(key string, fields ...string) (*Pivot, error) {
	p := NewPivot(key, fields...)
	if err := s.AddFacet(p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateInterval registers a new interval facet.
func (s *FacetSet) CreateInterval(key, field string) (*Interval, error) {
	i := NewInterval(key, field)
	if err := s.AddFacet(i); err != nil {
		return nil, err
	}
	return i, nil
}

// Validate checks the global options and every facet.
func (s *FacetSet) Validate() error {
	errs := []error{checkSortMethod("facet.", s.Sort, s.Method)}
	for _, f := range s.facets {
		if v, ok := f.(component.Validator); ok {
			errs = append(errs, v.Validate())
		}
		if p, ok := f.(*Pivot); ok {
			errs = append(errs, s.checkPivotKey(p))
		}
	}
	return errors.Join(errs...)
}

// checkPivotKey rejects a stats pivot whose field list, which becomes its key
// at build time, is already the key of a different facet.
func (s *FacetSet) checkPivotKey(p *Pivot) error {
	if strings.Join(p.Stats, ",") == "" {
		return nil
	}
	key := strings.Join(p.Fields, ",")
	if existing := s.Facet(key); existing != nil && existing != p {
		return fmt.Errorf("pivot facet %q: %w", key, domain.ErrDuplicateKey)
	}
	return nil
}
