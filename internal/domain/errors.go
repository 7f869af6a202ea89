package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration signals a component option outside its allowed set.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrDuplicateKey signals two sibling sub-components sharing a key.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrMissingKey signals a keyed sub-component registered without a key.
	ErrMissingKey = errors.New("missing key")
	// ErrUnsupportedType signals a component or facet type with no registered builder/parser.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrMalformedResponse signals a response value of the wrong shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbedderNotConfigured signals a vector query without an embedding provider.
	ErrEmbedderNotConfigured = errors.New("embedder not configured")
)

// ConfigError wraps ErrInvalidConfiguration with the offending option and value.
type ConfigError struct {
	Option string
	Value  string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: option %q does not accept %q", e.Err.Error(), e.Option, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewInvalidOption creates a ConfigError for a value outside the option's constant set.
func NewInvalidOption(option, value string) error {
	return &ConfigError{Option: option, Value: value, Err: ErrInvalidConfiguration}
}

// Malformed wraps ErrMalformedResponse with the offending path and value.
func Malformed(path string, v any) error {
	return fmt.Errorf("%w: %s = %v", ErrMalformedResponse, path, v)
}

// UnsupportedType wraps ErrUnsupportedType with the offending type tag.
func UnsupportedType(kind, tag string) error {
	return fmt.Errorf("%w: %s %q", ErrUnsupportedType, kind, tag)
}
