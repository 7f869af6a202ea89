// Package grouping requests result grouping by field, query or function and
// reads back the groups with their documents.
package grouping

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// Format selects the grouped response layout.
type Format string

const (
	FormatGrouped Format = "grouped"
	FormatSimple  Format = "simple"
)

// Grouping is the grouping component.
type Grouping struct {
	Fields          []string
	Queries         []string
	Function        string
	Limit           *int
	Offset          *int
	Sort            string
	Main            *bool
	NumberOfGroups  *bool
	Truncate        *bool
	Facet           *bool
	CachePercentage *int
	Format          Format
}

// New returns a grouping component with no options set.
func New() *Grouping { return &Grouping{} }

// Type implements component.Component.
func (g *Grouping) Type() component.Type { return component.TypeGrouping }

// SetFields replaces the group fields with a comma-separated list.
func (g *Grouping) SetFields(list string) *Grouping {
	g.Fields = component.SplitList(list)
	return g
}

// Validate rejects an unknown format.
func (g *Grouping) Validate() error {
	return component.CheckEnum("group.format", g.Format, FormatGrouped, FormatSimple)
}

// Build emits group=true and the group.* parameters.
func Build(c component.Component, req *request.Request) error {
	g, err := component.As[*Grouping](c)
	if err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}

	req.Add("group", "true")
	for _, f := range g.Fields {
		req.AddMulti("group.field", f)
	}
	for _, q := range g.Queries {
		req.AddMulti("group.query", q)
	}
	req.Add("group.func", g.Function)
	req.AddInt("group.limit", g.Limit)
	req.AddInt("group.offset", g.Offset)
	req.Add("group.sort", g.Sort)
	req.AddBool("group.main", g.Main)
	req.AddBool("group.ngroups", g.NumberOfGroups)
	req.AddBool("group.truncate", g.Truncate)
	req.AddBool("group.facet", g.Facet)
	req.AddInt("group.cache.percent", g.CachePercentage)
	req.Add("group.format", string(g.Format))
	return nil
}
