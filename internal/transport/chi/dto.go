package chi

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/component/facet"
	"github.com/kailas-cloud/solrkit/internal/component/grouping"
	"github.com/kailas-cloud/solrkit/internal/component/highlight"
	"github.com/kailas-cloud/solrkit/internal/component/mlt"
	"github.com/kailas-cloud/solrkit/internal/domain"
	lp "github.com/kailas-cloud/solrkit/internal/localparams"
	"github.com/kailas-cloud/solrkit/internal/query"
	"github.com/kailas-cloud/solrkit/internal/query/filter"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// SelectRequest is the JSON body of POST /v1/cores/{core}/select. List
// fields accept a JSON array or a comma-separated string.
type SelectRequest struct {
	Query        string         `json:"q"`
	Operator     string         `json:"q_op,omitempty"`
	DefaultField string         `json:"df,omitempty"`
	Start        *int           `json:"start,omitempty"`
	Rows         *int           `json:"rows,omitempty"`
	Fields       component.List `json:"fl,omitempty"`
	Sort         []SortClause   `json:"sort,omitempty"`
	Filters      []FilterQuery  `json:"filters,omitempty"`
	Writer       string         `json:"writer,omitempty"`
	KNN          *KNN           `json:"knn,omitempty"`
	Facets       *Facets        `json:"facets,omitempty"`
	Highlight    *Highlight     `json:"highlight,omitempty"`
	Spellcheck   *Spellcheck    `json:"spellcheck,omitempty"`
	Grouping     *Grouping      `json:"grouping,omitempty"`
	MoreLikeThis *MoreLikeThis  `json:"mlt,omitempty"`
	Stats        *Stats         `json:"stats,omitempty"`
	EdisMax      *EdisMax       `json:"edismax,omitempty"`
	Spatial      *Spatial       `json:"spatial,omitempty"`
	Debug        bool           `json:"debug,omitempty"`
}

// SortClause is one sort field.
type SortClause struct {
	Field string `json:"field"`
	Order string `json:"order,omitempty"`
}

// FilterQuery is either a raw query or a structured expression.
type FilterQuery struct {
	Key     string         `json:"key"`
	Query   string         `json:"query,omitempty"`
	Tags    component.List `json:"tags,omitempty"`
	Must    []Condition    `json:"must,omitempty"`
	Should  []Condition    `json:"should,omitempty"`
	MustNot []Condition    `json:"must_not,omitempty"`
}

// Condition matches a value or a numeric range.
type Condition struct {
	Key   string  `json:"key"`
	Match *string `json:"match,omitempty"`
	Range *Range  `json:"range,omitempty"`
}

// Range holds numeric bounds.
type Range struct {
	GT  *float64 `json:"gt,omitempty"`
	GTE *float64 `json:"gte,omitempty"`
	LT  *float64 `json:"lt,omitempty"`
	LTE *float64 `json:"lte,omitempty"`
}

// KNN is a dense vector query. Text is embedded by the gateway.
type KNN struct {
	Field  string    `json:"field"`
	TopK   int       `json:"top_k,omitempty"`
	Vector []float32 `json:"vector,omitempty"`
	Text   string    `json:"text,omitempty"`
}

// Facets configures the facet set.
type Facets struct {
	Sort      string          `json:"sort,omitempty"`
	Limit     *int            `json:"limit,omitempty"`
	MinCount  *int            `json:"mincount,omitempty"`
	Fields    []FieldFacet    `json:"fields,omitempty"`
	Queries   []QueryFacet    `json:"queries,omitempty"`
	Ranges    []RangeFacet    `json:"ranges,omitempty"`
	Pivots    []PivotFacet    `json:"pivots,omitempty"`
	Intervals []IntervalFacet `json:"intervals,omitempty"`
}

// FieldFacet is a field facet.
type FieldFacet struct {
	Key      string         `json:"key"`
	Field    string         `json:"field"`
	Prefix   string         `json:"prefix,omitempty"`
	Sort     string         `json:"sort,omitempty"`
	Limit    *int           `json:"limit,omitempty"`
	MinCount *int           `json:"mincount,omitempty"`
	Excludes component.List `json:"excludes,omitempty"`
}

// QueryFacet is a query facet.
type QueryFacet struct {
	Key      string         `json:"key"`
	Query    string         `json:"query"`
	Excludes component.List `json:"excludes,omitempty"`
}

// RangeFacet is a range facet.
type RangeFacet struct {
	Key      string         `json:"key"`
	Field    string         `json:"field"`
	Start    string         `json:"start"`
	End      string         `json:"end"`
	Gap      string         `json:"gap"`
	Other    component.List `json:"other,omitempty"`
	Include  component.List `json:"include,omitempty"`
	Excludes component.List `json:"excludes,omitempty"`
}

// PivotFacet is a pivot facet.
type PivotFacet struct {
	Key      string         `json:"key"`
	Fields   component.List `json:"fields"`
	MinCount *int           `json:"mincount,omitempty"`
	Stats    component.List `json:"stats,omitempty"`
	Excludes component.List `json:"excludes,omitempty"`
}

// IntervalFacet is an interval facet.
type IntervalFacet struct {
	Key      string         `json:"key"`
	Field    string         `json:"field"`
	Sets     []IntervalSet  `json:"sets"`
	Excludes component.List `json:"excludes,omitempty"`
}

// IntervalSet is one interval, optionally keyed.
type IntervalSet struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

// Highlight configures highlighting.
type Highlight struct {
	Fields   component.List `json:"fields"`
	Method   string         `json:"method,omitempty"`
	Snippets *int           `json:"snippets,omitempty"`
	FragSize *int           `json:"fragsize,omitempty"`
	Pre      string         `json:"pre,omitempty"`
	Post     string         `json:"post,omitempty"`
}

// Spellcheck configures spellchecking.
type Spellcheck struct {
	Query           string         `json:"query,omitempty"`
	Dictionaries    component.List `json:"dictionaries,omitempty"`
	Count           *int           `json:"count,omitempty"`
	Collate         *bool          `json:"collate,omitempty"`
	ExtendedResults *bool          `json:"extended_results,omitempty"`
}

// Grouping configures result grouping.
type Grouping struct {
	Fields   component.List `json:"fields,omitempty"`
	Queries  component.List `json:"queries,omitempty"`
	Function string         `json:"function,omitempty"`
	Limit    *int           `json:"limit,omitempty"`
	NGroups  *bool          `json:"ngroups,omitempty"`
	Format   string         `json:"format,omitempty"`
}

// MoreLikeThis configures more-like-this.
type MoreLikeThis struct {
	Fields           component.List `json:"fields"`
	Count            *int           `json:"count,omitempty"`
	MinTermFrequency *int           `json:"mintf,omitempty"`
	MinDocFrequency  *int           `json:"mindf,omitempty"`
	InterestingTerms string         `json:"interesting_terms,omitempty"`
}

// Stats configures field statistics.
type Stats struct {
	Fields component.List `json:"fields"`
	Facets component.List `json:"facets,omitempty"`
}

// EdisMax configures the extended dismax parser.
type EdisMax struct {
	QueryFields  string   `json:"qf,omitempty"`
	MinimumMatch string   `json:"mm,omitempty"`
	PhraseFields string   `json:"pf,omitempty"`
	Boost        string   `json:"boost,omitempty"`
	Tie          *float64 `json:"tie,omitempty"`
}

// Spatial sets the geospatial parameters.
type Spatial struct {
	Field    string   `json:"field"`
	Point    string   `json:"point"`
	Distance *float64 `json:"distance,omitempty"`
	// Filter adds a {!geofilt} filter query.
	Filter bool `json:"filter,omitempty"`
}

// toQuery maps the DTO onto a select query. Errors wrap the domain
// configuration sentinels.
func (r *SelectRequest) toQuery() (*query.Select, error) {
	q := query.NewSelect(r.Query)
	q.Operator = query.Operator(r.Operator)
	q.DefaultField = r.DefaultField
	q.Start, q.Rows = r.Start, r.Rows
	q.Fields = r.Fields
	q.Writer = wire.Writer(r.Writer)
	for _, s := range r.Sort {
		q.AddSort(s.Field, query.Order(s.Order))
	}
	for _, f := range r.Filters {
		if err := addFilter(q, f); err != nil {
			return nil, err
		}
	}
	if r.KNN != nil {
		q.KNN = &query.KNN{Field: r.KNN.Field, TopK: r.KNN.TopK, Vector: r.KNN.Vector, Text: r.KNN.Text}
	}
	if r.Facets != nil {
		if err := addFacets(q.FacetSet(), r.Facets); err != nil {
			return nil, err
		}
	}
	if h := r.Highlight; h != nil {
		hl := q.Highlighting()
		hl.AddFields(h.Fields...)
		hl.Method = highlight.Method(h.Method)
		hl.Snippets, hl.FragSize = h.Snippets, h.FragSize
		hl.SimplePrefix, hl.SimplePostfix = h.Pre, h.Post
	}
	if s := r.Spellcheck; s != nil {
		sc := q.Spellcheck()
		sc.Query, sc.Dictionaries, sc.Count = s.Query, s.Dictionaries, s.Count
		sc.Collate, sc.ExtendedResults = s.Collate, s.ExtendedResults
	}
	if g := r.Grouping; g != nil {
		gr := q.Grouping()
		gr.Fields, gr.Queries, gr.Function = g.Fields, g.Queries, g.Function
		gr.Limit, gr.NumberOfGroups = g.Limit, g.NGroups
		gr.Format = grouping.Format(g.Format)
	}
	if m := r.MoreLikeThis; m != nil {
		ml := q.MoreLikeThis()
		ml.Fields, ml.Count = m.Fields, m.Count
		ml.MinTermFrequency, ml.MinDocFrequency = m.MinTermFrequency, m.MinDocFrequency
		ml.InterestingTerms = mlt.InterestingTerms(m.InterestingTerms)
	}
	if s := r.Stats; s != nil {
		st := q.Stats()
		st.Facets = s.Facets
		for _, name := range s.Fields {
			st.CreateField(name)
		}
	}
	if e := r.EdisMax; e != nil {
		ed := q.EdisMax()
		ed.QueryFields, ed.MinimumMatch, ed.PhraseFields = e.QueryFields, e.MinimumMatch, e.PhraseFields
		ed.Boost, ed.Tie = e.Boost, e.Tie
	}
	if s := r.Spatial; s != nil {
		sp := q.Spatial()
		sp.Field, sp.Point, sp.Distance = s.Field, s.Point, s.Distance
		if s.Filter {
			if _, err := q.CreateFilter("geofilt", lp.RenderParser("geofilt", "")); err != nil {
				return nil, err
			}
		}
	}
	if r.Debug {
		q.Debug()
	}
	return q, nil
}

func addFilter(q *query.Select, f FilterQuery) error {
	structured := len(f.Must)+len(f.Should)+len(f.MustNot) > 0
	if structured == (f.Query != "") {
		return fmt.Errorf("%w: filter %q must have either a query or conditions", domain.ErrInvalidConfiguration, f.Key)
	}
	if !structured {
		_, err := q.CreateFilter(f.Key, f.Query, f.Tags...)
		return err
	}

	must, err := conditions(f.Must)
	if err != nil {
		return err
	}
	should, err := conditions(f.Should)
	if err != nil {
		return err
	}
	mustNot, err := conditions(f.MustNot)
	if err != nil {
		return err
	}
	expr, err := filter.NewExpression(must, should, mustNot)
	if err != nil {
		return err
	}
	_, err = q.CreateFilterExpression(f.Key, expr, f.Tags...)
	return err
}

func conditions(cs []Condition) ([]filter.Condition, error) {
	out := make([]filter.Condition, 0, len(cs))
	for _, c := range cs {
		cond, err := condition(c)
		if err != nil {
			return nil, err
		}
		out = append(out, cond)
	}
	return out, nil
}

func condition(c Condition) (filter.Condition, error) {
	switch {
	case c.Match != nil && c.Range != nil:
		return filter.Condition{}, fmt.Errorf("%w: condition %q must have match or range, not both",
			domain.ErrInvalidConfiguration, c.Key)
	case c.Match != nil:
		return filter.NewMatch(c.Key, *c.Match)
	case c.Range != nil:
		rf, err := filter.NewRangeFilter(c.Range.GT, c.Range.GTE, c.Range.LT, c.Range.LTE)
		if err != nil {
			return filter.Condition{}, err
		}
		return filter.NewRange(c.Key, rf)
	default:
		return filter.Condition{}, fmt.Errorf("%w: condition %q must have match or range",
			domain.ErrInvalidConfiguration, c.Key)
	}
}

type excludable interface {
	facet.Facet
	AddExclude(tags ...string)
}

func addFacets(fs *facet.FacetSet, f *Facets) error {
	fs.Sort = facet.Sort(f.Sort)
	fs.Limit, fs.MinCount = f.Limit, f.MinCount

	var errs []error
	add := func(ff excludable, excludes []string) {
		ff.AddExclude(excludes...)
		errs = append(errs, fs.AddFacet(ff))
	}
	for _, d := range f.Fields {
		ff := facet.NewField(d.Key, d.Field)
		ff.Prefix, ff.Sort = d.Prefix, facet.Sort(d.Sort)
		ff.Limit, ff.MinCount = d.Limit, d.MinCount
		add(ff, d.Excludes)
	}
	for _, d := range f.Queries {
		add(facet.NewQuery(d.Key, d.Query), d.Excludes)
	}
	for _, d := range f.Ranges {
		rf := facet.NewRange(d.Key, d.Field, d.Start, d.End, d.Gap)
		for _, o := range d.Other {
			rf.Other = append(rf.Other, facet.RangeOther(o))
		}
		for _, i := range d.Include {
			rf.Include = append(rf.Include, facet.RangeInclude(i))
		}
		add(rf, d.Excludes)
	}
	for _, d := range f.Pivots {
		pf := facet.NewPivot(d.Key, d.Fields...)
		pf.MinCount, pf.Stats = d.MinCount, d.Stats
		add(pf, d.Excludes)
	}
	for _, d := range f.Intervals {
		iv := facet.NewInterval(d.Key, d.Field)
		for _, s := range d.Sets {
			iv.AddKeyedSet(s.Key, s.Value)
		}
		add(iv, d.Excludes)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, err)
	}
	return nil
}
