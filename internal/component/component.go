// Package component defines the contracts shared by every query component:
// the type tag used for dispatch, the builder and parser signatures, the
// registry that binds them, and small option helpers.
package component

import (
	"github.com/kailas-cloud/solrkit/internal/document"
	"github.com/kailas-cloud/solrkit/internal/request"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Type tags a component kind.
type Type string

// Known component types.
const (
	TypeFacetSet     Type = "facetset"
	TypeHighlighting Type = "highlighting"
	TypeSpellcheck   Type = "spellcheck"
	TypeGrouping     Type = "grouping"
	TypeMoreLikeThis Type = "morelikethis"
	TypeStats        Type = "stats"
	TypeDebug        Type = "debug"
	TypeDisMax       Type = "dismax"
	TypeEdisMax      Type = "edismax"
	TypeSpatial      Type = "spatial"
)

// Component is a typed configuration bundle attached to a query.
type Component interface {
	Type() Type
}

// Validator is implemented by components with enumerated options.
// Builders call it before emitting any parameter.
type Validator interface {
	Validate() error
}

// Builder emits a component's wire parameters into req.
type Builder interface {
	Build(c Component, req *request.Request) error
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(c Component, req *request.Request) error

// Build calls f.
func (f BuilderFunc) Build(c Component, req *request.Request) error { return f(c, req) }

// Parser maps the raw response data onto a component result.
// A nil result with a nil error means the engine did not execute the component.
type Parser interface {
	Parse(ctx ParseContext, c Component, data any) (any, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(ctx ParseContext, c Component, data any) (any, error)

// Parse calls f.
func (f ParserFunc) Parse(ctx ParseContext, c Component, data any) (any, error) {
	return f(ctx, c, data)
}

// ParseContext carries what parsers need from the query that produced the
// response.
type ParseContext struct {
	// Documents builds result documents. Nil means document.New.
	Documents document.Factory
	// Writer is the response writer the request asked for.
	Writer wire.Writer
}

// Document builds a Document from a raw document entry.
func (c ParseContext) Document(raw any) document.Document {
	fields, _ := wire.Plain(raw).(map[string]any)
	if fields == nil {
		fields = map[string]any{}
	}
	if c.Documents == nil {
		return document.New(fields)
	}
	return c.Documents(fields)
}

// DocumentList builds one Document per entry of a raw doc list.
func (c ParseContext) DocumentList(raw any) []document.Document {
	arr, _ := raw.([]any)
	docs := make([]document.Document, 0, len(arr))
	for _, d := range arr {
		docs = append(docs, c.Document(d))
	}
	return docs
}
