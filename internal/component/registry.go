package component

import (
	"fmt"
	"sync"

	"github.com/kailas-cloud/solrkit/internal/domain"
)

// Registry binds component types to their builder and parser.
// Components without a response section (dismax, spatial) register no parser.
type Registry struct {
	mu       sync.RWMutex
	builders map[Type]Builder
	parsers  map[Type]Parser
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[Type]Builder),
		parsers:  make(map[Type]Parser),
	}
}

// Register binds t to b and p. A nil parser leaves t without one.
func (r *Registry) Register(t Type, b Builder, p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[t] = b
	if p != nil {
		r.parsers[t] = p
	} else {
		delete(r.parsers, t)
	}
}

// Builder returns the builder for t or an ErrUnsupportedType error.
func (r *Registry) Builder(t Type) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[t]
	if !ok {
		return nil, domain.UnsupportedType("component", string(t))
	}
	return b, nil
}

// Parser returns the parser for t. Known types without a parser report false
// with a nil error; unknown types return ErrUnsupportedType.
func (r *Registry) Parser(t Type) (Parser, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, known := r.builders[t]; !known {
		return nil, false, domain.UnsupportedType("component", string(t))
	}
	p, ok := r.parsers[t]
	return p, ok, nil
}

// As asserts c to the concrete component type a builder or parser expects.
func As[T Component](c Component) (T, error) {
	v, ok := c.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: component %T", domain.ErrUnsupportedType, c)
	}
	return v, nil
}
