// Package dismax configures the dismax and extended dismax query parsers.
// Neither has a response section of its own.
package dismax

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// DisMax is the dismax query parser component.
type DisMax struct {
	// QueryParser overrides defType; empty means "dismax".
	QueryParser      string
	QueryAlternative string
	QueryFields      string
	MinimumMatch     string
	PhraseFields     string
	PhraseSlop       *int
	QueryPhraseSlop  *int
	Tie              *float64
	BoostQueries     []string
	BoostFunctions   string
}

// New returns a dismax component.
func New() *DisMax { return &DisMax{} }

// Type implements component.Component.
func (d *DisMax) Type() component.Type { return component.TypeDisMax }

// EdisMax is the extended dismax query parser component.
type EdisMax struct {
	DisMax
	PhraseBigramFields  string
	PhraseBigramSlop    *int
	PhraseTrigramFields string
	PhraseTrigramSlop   *int
	// Boost is a multiplicative boost function.
	Boost      string
	UserFields string
}

// NewEdisMax returns an edismax component.
func NewEdisMax() *EdisMax { return &EdisMax{} }

// Type implements component.Component.
func (e *EdisMax) Type() component.Type { return component.TypeEdisMax }

// Build emits the dismax parameters.
func Build(c component.Component, req *request.Request) error {
	d, err := component.As[*DisMax](c)
	if err != nil {
		return err
	}
	build(d, "dismax", req)
	return nil
}

// BuildEdisMax emits the dismax parameters plus the edismax extensions.
func BuildEdisMax(c component.Component, req *request.Request) error {
	e, err := component.As[*EdisMax](c)
	if err != nil {
		return err
	}
	build(&e.DisMax, "edismax", req)
	req.Add("pf2", e.PhraseBigramFields)
	req.AddInt("ps2", e.PhraseBigramSlop)
	req.Add("pf3", e.PhraseTrigramFields)
	req.AddInt("ps3", e.PhraseTrigramSlop)
	req.Add("boost", e.Boost)
	req.Add("uf", e.UserFields)
	return nil
}

func build(d *DisMax, defType string, req *request.Request) {
	if d.QueryParser != "" {
		defType = d.QueryParser
	}
	req.Add("defType", defType)
	req.Add("q.alt", d.QueryAlternative)
	req.Add("qf", d.QueryFields)
	req.Add("mm", d.MinimumMatch)
	req.Add("pf", d.PhraseFields)
	req.AddInt("ps", d.PhraseSlop)
	req.AddInt("qs", d.QueryPhraseSlop)
	req.AddFloat("tie", d.Tie)
	for _, bq := range d.BoostQueries {
		req.AddMulti("bq", bq)
	}
	req.Add("bf", d.BoostFunctions)
}
