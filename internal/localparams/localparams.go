// Package localparams renders the {!k=v ...} prefix the engine uses to attach
// metadata (result key, exclusion tags, stats references) to a single
// parameter value.
package localparams

import "strings"

// Param is a single local parameter. Multiple values are comma-joined.
type Param struct {
	Key    string
	Values []string
}

// P builds a Param from a key and zero or more values.
func P(key string, values ...string) Param {
	return Param{Key: key, Values: values}
}

// Render prefixes value with the non-empty params in the given order.
// Params whose values are all empty are skipped; if none remain, value is
// returned unchanged. No escaping is performed.
func Render(value string, params ...Param) string {
	return RenderParser("", value, params...)
}

// RenderParser is Render with a leading query parser name, as in
// {!knn f=vec}[...]. The parser name is always emitted when set, even with no
// params.
func RenderParser(parser, value string, params ...Param) string {
	var b strings.Builder
	b.WriteString(parser)
	for _, p := range params {
		joined := join(p.Values)
		if joined == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(joined)
	}
	if b.Len() == 0 {
		return value
	}
	return "{!" + b.String() + "}" + value
}

func join(values []string) string {
	nonEmpty := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	return strings.Join(nonEmpty, ",")
}
