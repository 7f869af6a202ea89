// Package mlt requests documents similar to each result and reads back the
// matches per source document.
package mlt

import (
	"strings"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// InterestingTerms controls whether the terms used for similarity are
// returned.
type InterestingTerms string

const (
	TermsNone    InterestingTerms = "none"
	TermsList    InterestingTerms = "list"
	TermsDetails InterestingTerms = "details"
)

// MoreLikeThis is the more-like-this component.
type MoreLikeThis struct {
	Fields           []string
	MinTermFrequency *int
	MinDocFrequency  *int
	MaxDocFrequency  *int
	MinWordLength    *int
	MaxWordLength    *int
	MaxQueryTerms    *int
	MaxNumTokens     *int
	Boost            *bool
	QueryFields      []string
	Count            *int
	InterestingTerms InterestingTerms
}

// New returns a more-like-this component with no options set.
func New() *MoreLikeThis { return &MoreLikeThis{} }

// Type implements component.Component.
func (m *MoreLikeThis) Type() component.Type { return component.TypeMoreLikeThis }

// SetFields replaces the similarity fields with a comma-separated list.
func (m *MoreLikeThis) SetFields(list string) *MoreLikeThis {
	m.Fields = component.SplitList(list)
	return m
}

// SetQueryFields replaces the boosted query fields with a comma-separated
// list such as "title^2, body".
func (m *MoreLikeThis) SetQueryFields(list string) *MoreLikeThis {
	m.QueryFields = component.SplitList(list)
	return m
}

// Validate rejects an unknown interestingTerms mode.
func (m *MoreLikeThis) Validate() error {
	return component.CheckEnum("mlt.interestingTerms", m.InterestingTerms, TermsNone, TermsList, TermsDetails)
}

// Build emits mlt=true and the mlt.* parameters. mlt.qf is space separated,
// unlike mlt.fl.
func Build(c component.Component, req *request.Request) error {
	m, err := component.As[*MoreLikeThis](c)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	req.Add("mlt", "true")
	req.Add("mlt.fl", strings.Join(m.Fields, ","))
	req.AddInt("mlt.mintf", m.MinTermFrequency)
	req.AddInt("mlt.mindf", m.MinDocFrequency)
	req.AddInt("mlt.maxdf", m.MaxDocFrequency)
	req.AddInt("mlt.minwl", m.MinWordLength)
	req.AddInt("mlt.maxwl", m.MaxWordLength)
	req.AddInt("mlt.maxqt", m.MaxQueryTerms)
	req.AddInt("mlt.maxntp", m.MaxNumTokens)
	req.AddBool("mlt.boost", m.Boost)
	req.Add("mlt.qf", strings.Join(m.QueryFields, " "))
	req.AddInt("mlt.count", m.Count)
	req.Add("mlt.interestingTerms", string(m.InterestingTerms))
	return nil
}
