// Package filter builds structured filter queries (fq) with must, should and
// must-not clauses and renders them in the standard query syntax.
package filter

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/solrkit/internal/domain"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// MaxConditionsPerGroup is the maximum number of conditions per clause group.
const MaxConditionsPerGroup = 32

// Expression is a structured filter with must/should/must_not boolean semantics.
type Expression struct {
	must    []Condition
	should  []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should, mustNot []Condition) (Expression, error) {
	for name, group := range map[string][]Condition{"must": must, "should": should, "must_not": mustNot} {
		if len(group) > MaxConditionsPerGroup {
			return Expression{}, fmt.Errorf("%w: too many %s conditions (max %d)",
				domain.ErrInvalidConfiguration, name, MaxConditionsPerGroup)
		}
	}
	return Expression{must: must, should: should, mustNot: mustNot}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// MustNot returns the must-not conditions.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0 && len(e.mustNot) == 0
}

// String renders the expression as +a -b c.
func (e Expression) String() string {
	parts := make([]string, 0, len(e.must)+len(e.should)+len(e.mustNot))
	for _, c := range e.must {
		parts = append(parts, "+"+c.String())
	}
	for _, c := range e.mustNot {
		parts = append(parts, "-"+c.String())
	}
	for _, c := range e.should {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

// Condition is a single filter clause: either a term match or a numeric range.
type Condition struct {
	key       string
	match     string
	rangeExpr *Range
}

// NewMatch creates an exact term match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("%w: filter key is required", domain.ErrInvalidConfiguration)
	}
	if match == "" {
		return Condition{}, fmt.Errorf("%w: match value is required for key %q", domain.ErrInvalidConfiguration, key)
	}
	return Condition{key: key, match: match}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("%w: filter key is required", domain.ErrInvalidConfiguration)
	}
	return Condition{key: key, rangeExpr: &r}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// IsMatch reports whether this is a match condition.
func (c Condition) IsMatch() bool { return c.match != "" }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

// String renders field:"value" or field:[lo TO hi].
func (c Condition) String() string {
	if c.rangeExpr != nil {
		return c.key + ":" + c.rangeExpr.String()
	}
	return c.key + ":" + quote(c.match)
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Range is a numeric range with gt/gte/lt/lte boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range.
// At least one boundary required. gt/gte and lt/lte are mutually exclusive.
func NewRangeFilter(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("%w: at least one range boundary is required", domain.ErrInvalidConfiguration)
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("%w: cannot specify both gt and gte", domain.ErrInvalidConfiguration)
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("%w: cannot specify both lt and lte", domain.ErrInvalidConfiguration)
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }

// String renders the range with [ ] for inclusive and { } for exclusive
// bounds; a missing bound is *.
func (r Range) String() string {
	var b strings.Builder
	switch {
	case r.gt != nil:
		b.WriteString("{" + request.FormatFloat(*r.gt))
	case r.gte != nil:
		b.WriteString("[" + request.FormatFloat(*r.gte))
	default:
		b.WriteString("[*")
	}
	b.WriteString(" TO ")
	switch {
	case r.lt != nil:
		b.WriteString(request.FormatFloat(*r.lt) + "}")
	case r.lte != nil:
		b.WriteString(request.FormatFloat(*r.lte) + "]")
	default:
		b.WriteString("*]")
	}
	return b.String()
}
