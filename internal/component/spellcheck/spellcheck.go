// Package spellcheck requests spelling suggestions and collations and reads
// them back from both the legacy and the current response layouts.
package spellcheck

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// Spellcheck is the spellcheck component.
type Spellcheck struct {
	Query                   string
	Build                   *bool
	Reload                  *bool
	Dictionaries            []string
	Count                   *int
	OnlyMorePopular         *bool
	AlternativeTermCount    *int
	ExtendedResults         *bool
	Collate                 *bool
	MaxCollations           *int
	MaxCollationTries       *int
	MaxCollationEvaluations *int
	CollateExtendedResults  *bool
	Accuracy                *float64
	MaxResultsForSuggest    *int

	collateParams []param
}

type param struct {
	name, value string
}

// New returns a spellcheck component with no options set.
func New() *Spellcheck { return &Spellcheck{} }

// Type implements component.Component.
func (s *Spellcheck) Type() component.Type { return component.TypeSpellcheck }

// SetCollateParam overrides a query parameter while collations are tested.
// Setting an existing name replaces its value in place.
func (s *Spellcheck) SetCollateParam(name, value string) {
	for i := range s.collateParams {
		if s.collateParams[i].name == name {
			s.collateParams[i].value = value
			return
		}
	}
	s.collateParams = append(s.collateParams, param{name, value})
}

// CollateParam returns one collate param.
func (s *Spellcheck) CollateParam(name string) (string, bool) {
	for _, p := range s.collateParams {
		if p.name == name {
			return p.value, true
		}
	}
	return "", false
}

// RemoveCollateParam drops one collate param.
func (s *Spellcheck) RemoveCollateParam(name string) {
	for i, p := range s.collateParams {
		if p.name == name {
			s.collateParams = append(s.collateParams[:i], s.collateParams[i+1:]...)
			return
		}
	}
}

// Build emits the spellcheck parameters and one
// spellcheck.collateParam.<name> per collate param in insertion order.
func Build(c component.Component, req *request.Request) error {
	s, err := component.As[*Spellcheck](c)
	if err != nil {
		return err
	}

	req.Add("spellcheck", "true")
	req.Add("spellcheck.q", s.Query)
	req.AddBool("spellcheck.build", s.Build)
	req.AddBool("spellcheck.reload", s.Reload)
	for _, d := range s.Dictionaries {
		req.AddMulti("spellcheck.dictionary", d)
	}
	req.AddInt("spellcheck.count", s.Count)
	req.AddBool("spellcheck.onlyMorePopular", s.OnlyMorePopular)
	req.AddInt("spellcheck.alternativeTermCount", s.AlternativeTermCount)
	req.AddBool("spellcheck.extendedResults", s.ExtendedResults)
	req.AddBool("spellcheck.collate", s.Collate)
	req.AddInt("spellcheck.maxCollations", s.MaxCollations)
	req.AddInt("spellcheck.maxCollationTries", s.MaxCollationTries)
	req.AddInt("spellcheck.maxCollationEvaluations", s.MaxCollationEvaluations)
	req.AddBool("spellcheck.collateExtendedResults", s.CollateExtendedResults)
	req.AddFloat("spellcheck.accuracy", s.Accuracy)
	req.AddInt("spellcheck.maxResultsForSuggest", s.MaxResultsForSuggest)
	for _, p := range s.collateParams {
		req.Add("spellcheck.collateParam."+p.name, p.value)
	}
	return nil
}
