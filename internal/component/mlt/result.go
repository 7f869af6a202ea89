package mlt

import (
	"encoding/json"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/document"
	"github.com/kailas-cloud/solrkit/internal/domain"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Result holds the similar documents of each source document, keyed by the
// source's unique key.
type Result struct {
	matches          []*Match
	interestingTerms []wire.Pair
}

// Match returns the similar documents of one source, or nil.
func (r *Result) Match(key string) *Match {
	if r == nil {
		return nil
	}
	for _, m := range r.matches {
		if m.key == key {
			return m
		}
	}
	return nil
}

// Matches returns every match in response order.
func (r *Result) Matches() []*Match {
	if r == nil {
		return nil
	}
	return r.matches
}

// Len returns the number of source documents.
func (r *Result) Len() int { return len(r.Matches()) }

// InterestingTerms returns the terms used for similarity. With the list mode
// the values are nil; with details they are the term boosts.
func (r *Result) InterestingTerms() []wire.Pair {
	if r == nil {
		return nil
	}
	return r.interestingTerms
}

func (r *Result) MarshalJSON() ([]byte, error) {
	m := wire.NewMap()
	for _, match := range r.Matches() {
		m.Append(match.key, match)
	}
	return json.Marshal(m)
}

// Match is the similar-document list of one source document.
type Match struct {
	key      string
	numFound int64
	start    *int64
	maxScore *float64
	docs     []document.Document
}

func (m *Match) Key() string                    { return m.key }
func (m *Match) NumFound() int64                { return m.numFound }
func (m *Match) Start() *int64                  { return m.start }
func (m *Match) MaxScore() *float64             { return m.maxScore }
func (m *Match) Documents() []document.Document { return m.docs }

func (m *Match) MarshalJSON() ([]byte, error) {
	docs := make([]map[string]any, len(m.docs))
	for i, d := range m.docs {
		docs[i] = d.Fields()
	}
	return json.Marshal(struct {
		NumFound int64            `json:"numFound"`
		Start    *int64           `json:"start,omitempty"`
		MaxScore *float64         `json:"maxScore,omitempty"`
		Docs     []map[string]any `json:"docs"`
	}{m.numFound, m.start, m.maxScore, docs})
}

// Parse reads the moreLikeThis section in either flat or map form. The
// result is empty, never nil, when the section is missing.
func Parse(ctx component.ParseContext, c component.Component, data any) (any, error) {
	if _, err := component.As[*MoreLikeThis](c); err != nil {
		return nil, err
	}
	res := &Result{}
	raw, _ := wire.Lookup(data, "moreLikeThis")
	for _, p := range wire.Pairs(raw) {
		match := &Match{
			key:      p.Key,
			start:    wire.IntPtr(wire.Lookup(p.Value, "start")),
			maxScore: wire.FloatPtr(wire.Lookup(p.Value, "maxScore")),
		}
		if n, ok := wire.Lookup(p.Value, "numFound"); ok {
			if match.numFound, ok = wire.Int(n); !ok {
				return nil, domain.Malformed("moreLikeThis."+p.Key+".numFound", n)
			}
		}
		docs, _ := wire.Lookup(p.Value, "docs")
		match.docs = ctx.DocumentList(docs)
		res.matches = append(res.matches, match)
	}

	terms, _ := wire.Lookup(data, "interestingTerms")
	if arr, ok := terms.([]any); ok && allStrings(arr) {
		// list mode: a plain array of terms
		for _, t := range wire.Strings(arr) {
			res.interestingTerms = append(res.interestingTerms, wire.Pair{Key: t})
		}
	} else {
		res.interestingTerms = wire.Pairs(terms)
	}
	return res, nil
}

func allStrings(arr []any) bool {
	for _, v := range arr {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}
