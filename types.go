package solrkit

import (
	"github.com/kailas-cloud/solrkit/internal/cache"
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/component/debug"
	"github.com/kailas-cloud/solrkit/internal/component/dismax"
	"github.com/kailas-cloud/solrkit/internal/component/facet"
	"github.com/kailas-cloud/solrkit/internal/component/grouping"
	"github.com/kailas-cloud/solrkit/internal/component/highlight"
	"github.com/kailas-cloud/solrkit/internal/component/mlt"
	"github.com/kailas-cloud/solrkit/internal/component/spatial"
	"github.com/kailas-cloud/solrkit/internal/component/spellcheck"
	"github.com/kailas-cloud/solrkit/internal/component/stats"
	"github.com/kailas-cloud/solrkit/internal/document"
	"github.com/kailas-cloud/solrkit/internal/domain"
	"github.com/kailas-cloud/solrkit/internal/query"
	"github.com/kailas-cloud/solrkit/internal/query/filter"
	"github.com/kailas-cloud/solrkit/internal/request"
	"github.com/kailas-cloud/solrkit/internal/transport/solr"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Query and result types.
type (
	// Query is a select query. Create one with NewQuery.
	Query    = query.Select
	Result   = query.Result
	Filter   = query.Filter
	KNN      = query.KNN
	Order    = query.Order
	Operator = query.Operator
	Writer   = wire.Writer
	Request  = request.Request
)

// Query constants.
const (
	Asc           = query.Asc
	Desc          = query.Desc
	OperatorAND   = query.OperatorAND
	OperatorOR    = query.OperatorOR
	WriterJSON    = wire.WriterJSON
	WriterJSONMap = wire.WriterJSONMap
)

// NewQuery creates a select query for q. An empty q matches every document.
func NewQuery(q string) *Query { return query.NewSelect(q) }

// Structured filter expressions, rendered as filter queries.
type (
	FilterExpression = filter.Expression
	FilterCondition  = filter.Condition
	RangeFilter      = filter.Range
)

// Filter constructors.
var (
	NewFilterExpression = filter.NewExpression
	NewMatch            = filter.NewMatch
	NewRange            = filter.NewRange
	NewRangeFilter      = filter.NewRangeFilter
)

// Documents.
type (
	Document        = document.Document
	DocumentFactory = document.Factory
	Fields          = document.Fields
)

// Component contracts, for custom components registered with WithComponent.
type (
	Component        = component.Component
	ComponentType    = component.Type
	ComponentBuilder = component.Builder
	ComponentParser  = component.Parser
	ParseContext     = component.ParseContext
)

// Built-in components.
type (
	FacetSet     = facet.FacetSet
	Highlighting = highlight.Highlighting
	Spellcheck   = spellcheck.Spellcheck
	Grouping     = grouping.Grouping
	MoreLikeThis = mlt.MoreLikeThis
	Stats        = stats.Stats
	Debug        = debug.Debug
	DisMax       = dismax.DisMax
	EdisMax      = dismax.EdisMax
	Spatial      = spatial.Spatial
)

// Embedding.
type (
	Embedder        = domain.Embedder
	EmbeddingResult = domain.EmbeddingResult
)

// Cache stores raw engine responses keyed by encoded request.
type Cache = cache.Cache

// StatusError is a non-2xx engine response.
type StatusError = solr.StatusError

// Sentinel errors, checked with errors.Is.
var (
	ErrInvalidConfiguration   = domain.ErrInvalidConfiguration
	ErrUnsupportedType        = domain.ErrUnsupportedType
	ErrDuplicateKey           = domain.ErrDuplicateKey
	ErrMissingKey             = domain.ErrMissingKey
	ErrMalformedResponse      = domain.ErrMalformedResponse
	ErrEmbedderNotConfigured  = domain.ErrEmbedderNotConfigured
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrUnavailable            = solr.ErrUnavailable
	ErrCacheMiss              = cache.ErrMiss
)
