// Package debug requests query debugging output and reads back the parsed
// query, the per-document explanations and the component timings.
package debug

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// Debug is the debug component.
type Debug struct {
	// ExplainOther is a query whose matching documents are explained in
	// addition to the results.
	ExplainOther string
}

// New returns a debug component.
func New() *Debug { return &Debug{} }

// Type implements component.Component.
func (d *Debug) Type() component.Type { return component.TypeDebug }

// Build emits debugQuery=true with structured explanations.
func Build(c component.Component, req *request.Request) error {
	d, err := component.As[*Debug](c)
	if err != nil {
		return err
	}
	req.Add("debugQuery", "true")
	req.Add("debug.explain.structured", "true")
	req.Add("explainOther", d.ExplainOther)
	return nil
}
