// Package query holds the select query, which owns its components in
// registration order, and the orchestrator that turns it into a request and
// a response into a Result.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/document"
	"github.com/kailas-cloud/solrkit/internal/domain"
	lp "github.com/kailas-cloud/solrkit/internal/localparams"
	"github.com/kailas-cloud/solrkit/internal/query/filter"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Defaults applied at build time.
const (
	DefaultQuery   = "*:*"
	DefaultHandler = "select"
)

// Operator is the default boolean operator (q.op).
type Operator string

const (
	OperatorAND Operator = "AND"
	OperatorOR  Operator = "OR"
)

// IsValid checks if the operator is one of the supported values.
func (o Operator) IsValid() bool { return o == OperatorAND || o == OperatorOR }

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort is one sort clause.
type Sort struct {
	Field string
	Order Order
}

// Filter is a filter query. Tags label it so that facets can exclude it.
type Filter struct {
	Key   string
	Query string
	Tags  []string
}

func (f *Filter) render() string {
	return lp.Render(f.Query, lp.P("tag", f.Tags...))
}

// KNN turns the main query into a dense vector search. Text is embedded by
// the client when Vector is empty.
type KNN struct {
	Field  string
	TopK   int
	Vector []float32
	Text   string
}

func (k *KNN) render() (string, error) {
	if k.Field == "" {
		return "", fmt.Errorf("%w: knn field is required", domain.ErrInvalidConfiguration)
	}
	if len(k.Vector) == 0 {
		return "", fmt.Errorf("%w: knn query has no vector", domain.ErrInvalidConfiguration)
	}
	parts := make([]string, len(k.Vector))
	for i, v := range k.Vector {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	var topK string
	if k.TopK > 0 {
		topK = strconv.Itoa(k.TopK)
	}
	return lp.RenderParser("knn", "["+strings.Join(parts, ",")+"]", lp.P("f", k.Field), lp.P("topK", topK)), nil
}

// Named is a component with the name it was registered under.
type Named struct {
	Name      string
	Component component.Component
}

// Select is a select query.
type Select struct {
	Query        string
	Operator     Operator
	DefaultField string
	Start        *int
	Rows         *int
	Fields       []string
	OmitHeader   *bool
	KNN          *KNN
	// Handler is the request handler path below the core; empty means select.
	Handler string
	// Writer picks the named list encoding; empty means WriterJSON.
	Writer wire.Writer
	// Documents builds result documents; nil means document.New.
	Documents document.Factory

	sorts      []Sort
	filters    []*Filter
	components []Named
}

// NewSelect creates a select query for q.
func NewSelect(q string) *Select {
	return &Select{Query: q}
}

// AddSort appends a sort clause.
func (s *Select) AddSort(field string, order Order) *Select {
	s.sorts = append(s.sorts, Sort{Field: field, Order: order})
	return s
}

// Sorts returns the sort clauses in order.
func (s *Select) Sorts() []Sort { return append([]Sort(nil), s.sorts...) }

// ClearSorts drops every sort clause.
func (s *Select) ClearSorts() { s.sorts = nil }

// AddFilter registers a filter query. Its key must be set and unique.
func (s *Select) AddFilter(f *Filter) error {
	if f.Key == "" {
		return fmt.Errorf("filter query: %w", domain.ErrMissingKey)
	}
	if existing := s.Filter(f.Key); existing != nil {
		if existing == f {
			return nil
		}
		return fmt.Errorf("filter query %q: %w", f.Key, domain.ErrDuplicateKey)
	}
	s.filters = append(s.filters, f)
	return nil
}

// CreateFilter registers a new filter query.
func (s *Select) CreateFilter(key, q string, tags ...string) (*Filter, error) {
	f := &Filter{Key: key, Query: q, Tags: tags}
	if err := s.AddFilter(f); err != nil {
		return nil, err
	}
	return f, nil
}

// CreateFilterExpression registers a structured filter rendered to the
// standard query syntax.
func (s *Select) CreateFilterExpression(key string, e filter.Expression, tags ...string) (*Filter, error) {
	if e.IsEmpty() {
		return nil, fmt.Errorf("%w: filter %q is empty", domain.ErrInvalidConfiguration, key)
	}
	return s.CreateFilter(key, e.String(), tags...)
}

// Filter returns the filter query registered under key, or nil.
func (s *Select) Filter(key string) *Filter {
	for _, f := range s.filters {
		if f.Key == key {
			return f
		}
	}
	return nil
}

// Filters returns the filter queries in registration order.
func (s *Select) Filters() []*Filter { return append([]*Filter(nil), s.filters...) }

// RemoveFilter drops the filter query registered under key.
func (s *Select) RemoveFilter(key string) {
	for i, f := range s.filters {
		if f.Key == key {
			s.filters = append(s.filters[:i], s.filters[i+1:]...)
			return
		}
	}
}

// SetComponent registers c under name. Re-registering a name replaces the
// component in place, keeping its position.
func (s *Select) SetComponent(name string, c component.Component) {
	for i := range s.components {
		if s.components[i].Name == name {
			s.components[i].Component = c
			return
		}
	}
	s.components = append(s.components, Named{Name: name, Component: c})
}

// Component returns the component registered under name, or nil.
func (s *Select) Component(name string) component.Component {
	for _, n := range s.components {
		if n.Name == name {
			return n.Component
		}
	}
	return nil
}

// Components returns the components in registration order.
func (s *Select) Components() []Named { return append([]Named(nil), s.components...) }

// RemoveComponent drops the component registered under name.
func (s *Select) RemoveComponent(name string) {
	for i, n := range s.components {
		if n.Name == name {
			s.components = append(s.components[:i], s.components[i+1:]...)
			return
		}
	}
}

// Validate checks the query-level enumerations.
func (s *Select) Validate() error {
	var errs []error
	if s.Operator != "" && !s.Operator.IsValid() {
		errs = append(errs, domain.NewInvalidOption("q.op", string(s.Operator)))
	}
	if s.Writer != "" && !s.Writer.IsValid() {
		errs = append(errs, domain.NewInvalidOption("wt", string(s.Writer)))
	}
	if s.Start != nil && *s.Start < 0 {
		errs = append(errs, fmt.Errorf("%w: start must not be negative", domain.ErrInvalidConfiguration))
	}
	if s.Rows != nil && *s.Rows < 0 {
		errs = append(errs, fmt.Errorf("%w: rows must not be negative", domain.ErrInvalidConfiguration))
	}
	for _, so := range s.sorts {
		errs = append(errs, component.CheckEnum("sort", so.Order, Asc, Desc))
	}
	return errors.Join(errs...)
}

func (s *Select) writer() wire.Writer {
	if s.Writer == "" {
		return wire.WriterJSON
	}
	return s.Writer
}

// HandlerPath returns the handler to send the query to.
func (s *Select) HandlerPath() string {
	if s.Handler == "" {
		return DefaultHandler
	}
	return s.Handler
}
