package spellcheck

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Reserved keys inside spellcheck.suggestions.
const (
	keyCorrectlySpelled = "correctlySpelled"
	keyCollation        = "collation"
)

// Parse reads the spellcheck section, or returns nil when it is missing.
//
// Older engines put correctlySpelled and the collations inside the
// suggestions list next to the misspelled terms; newer ones move them to
// spellcheck.correctlySpelled and spellcheck.collations. Both are accepted.
func Parse(ctx component.ParseContext, c component.Component, data any) (any, error) {
	if _, err := component.As[*Spellcheck](c); err != nil {
		return nil, err
	}
	section, ok := wire.Lookup(data, "spellcheck")
	if !ok {
		return nil, nil
	}

	res := &Result{}
	suggestions, _ := wire.Lookup(section, "suggestions")
	for _, p := range wire.Pairs(suggestions) {
		switch p.Key {
		case keyCorrectlySpelled:
			res.correctlySpelled = wire.BoolPtr(p.Value, true)
		case keyCollation:
			res.collations = append(res.collations, parseCollation(ctx.Writer, p.Value)...)
		default:
			res.suggestions = append(res.suggestions, parseSuggestion(ctx.Writer, p.Key, p.Value))
		}
	}

	if v, ok := wire.Lookup(section, keyCorrectlySpelled); ok {
		res.correctlySpelled = wire.BoolPtr(v, true)
	}
	collations, _ := wire.Lookup(section, "collations")
	for _, p := range wire.Pairs(collations) {
		if p.Key == keyCollation {
			res.collations = append(res.collations, parseCollation(ctx.Writer, p.Value)...)
		}
	}
	return res, nil
}

// parseSuggestion accepts both the plain form, where the value is a list of
// alternative words, and the extended form carrying offsets and frequencies.
func parseSuggestion(w wire.Writer, original string, raw any) *Suggestion {
	s := &Suggestion{original: original}
	if arr, isList := raw.([]any); isList && !namedListWith(w, arr, "suggestion") {
		s.words = parseWords(arr)
		return s
	}
	m, ok := wire.ToMap(raw)
	if !ok {
		return s
	}
	s.numFound = wire.IntPtr(m.Get("numFound"))
	s.startOffset = wire.IntPtr(m.Get("startOffset"))
	s.endOffset = wire.IntPtr(m.Get("endOffset"))
	s.originalFrequency = wire.IntPtr(m.Get("origFreq"))
	words, _ := m.Get("suggestion")
	s.words = parseWords(words)
	return s
}

// namedListWith reports whether arr is a flattened named list holding key.
// The map writer encodes every named list as an object, so under it a list is
// always a plain list.
func namedListWith(w wire.Writer, arr []any, key string) bool {
	if w == wire.WriterJSONMap || !wire.IsFlat(arr) {
		return false
	}
	m, _ := wire.ToMap(arr)
	_, ok := m.Get(key)
	return ok
}

func parseWords(raw any) []Word {
	arr, _ := raw.([]any)
	words := make([]Word, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			words = append(words, Word{Word: s})
			continue
		}
		m, ok := wire.ToMap(e)
		if !ok {
			continue
		}
		w, _ := m.Get("word")
		word, _ := wire.String(w)
		words = append(words, Word{Word: word, Frequency: wire.IntPtr(m.Get("freq"))})
	}
	return words
}

// parseCollation tells the three collation shapes apart structurally:
// a bare string, a list of alternative strings, or an extended entry with
// collationQuery, hits and misspellingsAndCorrections.
func parseCollation(w wire.Writer, raw any) []*Collation {
	switch v := raw.(type) {
	case string:
		return []*Collation{{query: v}}
	case []any:
		if !namedListWith(w, v, "collationQuery") {
			out := make([]*Collation, 0, len(v))
			for _, q := range wire.Strings(v) {
				out = append(out, &Collation{query: q})
			}
			return out
		}
	}

	m, ok := wire.ToMap(raw)
	if !ok {
		return nil
	}
	c := &Collation{}
	q, _ := m.Get("collationQuery")
	c.query, _ = wire.String(q)
	c.hits = wire.IntPtr(m.Get("hits"))
	corrections, _ := m.Get("misspellingsAndCorrections")
	for _, p := range wire.Pairs(corrections) {
		correction, _ := wire.String(p.Value)
		c.corrections = append(c.corrections, Correction{Original: p.Key, Correction: correction})
	}
	return []*Collation{c}
}
