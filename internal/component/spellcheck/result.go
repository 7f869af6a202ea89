package spellcheck

import (
	"encoding/json"

	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Result holds suggestions per misspelled term plus the collations.
type Result struct {
	correctlySpelled *bool
	suggestions      []*Suggestion
	collations       []*Collation
}

// CorrectlySpelled is nil when the engine did not report it
// (extendedResults off).
func (r *Result) CorrectlySpelled() *bool { return r.correctlySpelled }

// Suggestions returns the suggestions in response order.
func (r *Result) Suggestions() []*Suggestion { return r.suggestions }

// Suggestion returns the suggestion for an original term, or nil.
func (r *Result) Suggestion(original string) *Suggestion {
	for _, s := range r.suggestions {
		if s.original == original {
			return s
		}
	}
	return nil
}

// Collations returns every collation in response order.
func (r *Result) Collations() []*Collation { return r.collations }

// Collation returns the first collation, or nil.
func (r *Result) Collation() *Collation {
	if len(r.collations) == 0 {
		return nil
	}
	return r.collations[0]
}

func (r *Result) MarshalJSON() ([]byte, error) {
	m := wire.NewMap()
	if r.correctlySpelled != nil {
		m.Append("correctlySpelled", *r.correctlySpelled)
	}
	m.Append("suggestions", r.suggestions)
	m.Append("collations", r.collations)
	return json.Marshal(m)
}

// Suggestion holds the alternatives for one original term. The numeric
// fields are nil when the response did not carry them.
type Suggestion struct {
	original          string
	numFound          *int64
	startOffset       *int64
	endOffset         *int64
	originalFrequency *int64
	words             []Word
}

// Word is one alternative. Frequency is only present with extendedResults.
type Word struct {
	Word      string `json:"word"`
	Frequency *int64 `json:"freq,omitempty"`
}

func (s *Suggestion) Original() string          { return s.original }
func (s *Suggestion) NumFound() *int64          { return s.numFound }
func (s *Suggestion) StartOffset() *int64       { return s.startOffset }
func (s *Suggestion) EndOffset() *int64         { return s.endOffset }
func (s *Suggestion) OriginalFrequency() *int64 { return s.originalFrequency }
func (s *Suggestion) Words() []Word             { return s.words }

// Word returns the first alternative, or "".
func (s *Suggestion) Word() string {
	if len(s.words) == 0 {
		return ""
	}
	return s.words[0].Word
}

func (s *Suggestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Original          string `json:"original"`
		NumFound          *int64 `json:"numFound,omitempty"`
		StartOffset       *int64 `json:"startOffset,omitempty"`
		EndOffset         *int64 `json:"endOffset,omitempty"`
		OriginalFrequency *int64 `json:"origFreq,omitempty"`
		Words             []Word `json:"suggestion"`
	}{s.original, s.numFound, s.startOffset, s.endOffset, s.originalFrequency, s.words})
}

// Collation is a rewritten query. Hits and corrections are only present
// with collateExtendedResults.
type Collation struct {
	query       string
	hits        *int64
	corrections []Correction
}

// Correction maps an original term to its replacement within a collation.
type Correction struct {
	Original   string `json:"original"`
	Correction string `json:"correction"`
}

func (c *Collation) Query() string             { return c.query }
func (c *Collation) Hits() *int64              { return c.hits }
func (c *Collation) Corrections() []Correction { return c.corrections }

func (c *Collation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Query       string       `json:"collationQuery"`
		Hits        *int64       `json:"hits,omitempty"`
		Corrections []Correction `json:"misspellingsAndCorrections,omitempty"`
	}{c.query, c.hits, c.corrections})
}
