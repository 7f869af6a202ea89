package grouping

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Parse reads the grouped section. The result is empty, never nil, when the
// section is missing; groups the response lacks are skipped.
func Parse(ctx component.ParseContext, c component.Component, data any) (any, error) {
	g, err := component.As[*Grouping](c)
	if err != nil {
		return nil, err
	}

	res := &Result{groups: make(map[string]Group)}
	grouped, ok := wire.Lookup(data, "grouped")
	if !ok {
		return res, nil
	}

	add := func(key string, grp Group) {
		if _, seen := res.groups[key]; !seen {
			res.keys = append(res.keys, key)
		}
		res.groups[key] = grp
	}

	fields := append([]string(nil), g.Fields...)
	if g.Function != "" {
		fields = append(fields, g.Function)
	}
	for _, f := range fields {
		raw, ok := wire.Lookup(grouped, f)
		if !ok {
			continue
		}
		add(f, parseFieldGroup(ctx, g.Format, raw))
	}
	for _, q := range g.Queries {
		raw, ok := wire.Lookup(grouped, q)
		if !ok {
			continue
		}
		add(q, parseQueryGroup(ctx, raw))
	}
	return res, nil
}

func parseFieldGroup(ctx component.ParseContext, format Format, raw any) *FieldGroup {
	g := &FieldGroup{
		matches:    wire.IntPtr(wire.Lookup(raw, "matches")),
		groupCount: wire.IntPtr(wire.Lookup(raw, "ngroups")),
	}
	if format == FormatSimple {
		// One flat doclist for the whole field, no per-value split.
		g.values = []*ValueGroup{parseValueGroup(ctx, raw)}
		return g
	}
	groups, _ := wire.Lookup(raw, "groups")
	arr, _ := groups.([]any)
	for _, v := range arr {
		g.values = append(g.values, parseValueGroup(ctx, v))
	}
	return g
}

func parseValueGroup(ctx component.ParseContext, raw any) *ValueGroup {
	v := &ValueGroup{}
	v.value, _ = wire.Lookup(raw, "groupValue")
	docList, _ := wire.Lookup(raw, "doclist")
	v.DocList = parseDocList(ctx, docList)
	return v
}

func parseQueryGroup(ctx component.ParseContext, raw any) *QueryGroup {
	docList, _ := wire.Lookup(raw, "doclist")
	return &QueryGroup{
		DocList: parseDocList(ctx, docList),
		matches: wire.IntPtr(wire.Lookup(raw, "matches")),
	}
}

func parseDocList(ctx component.ParseContext, raw any) DocList {
	docs, _ := wire.Lookup(raw, "docs")
	return DocList{
		numFound: wire.IntPtr(wire.Lookup(raw, "numFound")),
		start:    wire.IntPtr(wire.Lookup(raw, "start")),
		maxScore: wire.FloatPtr(wire.Lookup(raw, "maxScore")),
		docs:     ctx.DocumentList(docs),
	}
}
