// Package highlight requests highlighted snippets and reads them back per
// document and field.
package highlight

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/domain"
)

// Fragmenter splits text into snippets.
type Fragmenter string

const (
	FragmenterGap   Fragmenter = "gap"
	FragmenterRegex Fragmenter = "regex"
)

// BoundaryScanner decides where snippets may start and end.
type BoundaryScanner string

const (
	BoundaryCharacter BoundaryScanner = "CHARACTER"
	BoundaryWord      BoundaryScanner = "WORD"
	BoundarySentence  BoundaryScanner = "SENTENCE"
	BoundaryLine      BoundaryScanner = "LINE"
	BoundaryWhole     BoundaryScanner = "WHOLE"
)

// Method selects the highlighter implementation.
type Method string

const (
	MethodUnified    Method = "unified"
	MethodOriginal   Method = "original"
	MethodFastVector Method = "fastVector"
)

// Highlighting is the highlighting component. The global options apply to
// every field; a Field may override a subset of them.
type Highlighting struct {
	Method                   Method
	Query                    string
	QueryParser              string
	RequireFieldMatch        *bool
	UsePhraseHighlighter     *bool
	HighlightMultiTerm       *bool
	Snippets                 *int
	FragSize                 *int
	MergeContiguous          *bool
	MaxAnalyzedChars         *int
	AlternateField           string
	MaxAlternateFieldLength  *int
	PreserveMulti            *bool
	Formatter                string
	SimplePrefix             string
	SimplePostfix            string
	TagPrefix                string
	TagPostfix               string
	Encoder                  string
	Fragmenter               Fragmenter
	FragListBuilder          string
	FragmentsBuilder         string
	UseFastVectorHighlighter *bool
	RegexSlop                *float64
	RegexPattern             string
	RegexMaxAnalyzedChars    *int
	PhraseLimit              *int
	BoundaryScannerMaxScan   *int
	BoundaryScannerChars     string
	BoundaryScannerType      BoundaryScanner
	BoundaryScannerLanguage  string
	BoundaryScannerCountry   string

	fields []*Field
}

// Field is a highlighted field with its per-field overrides.
type Field struct {
	Name                     string
	Snippets                 *int
	FragSize                 *int
	MergeContiguous          *bool
	AlternateField           string
	Formatter                string
	SimplePrefix             string
	SimplePostfix            string
	Fragmenter               Fragmenter
	UseFastVectorHighlighter *bool
}

// New returns a highlighting component without fields.
func New() *Highlighting { return &Highlighting{} }

// Type implements component.Component.
func (h *Highlighting) Type() component.Type { return component.TypeHighlighting }

// AddField registers f. Its name must be set and unique.
func (h *Highlighting) AddField(f *Field) error {
	if f.Name == "" {
		return fmt.Errorf("highlight field: %w", domain.ErrMissingKey)
	}
	if existing := h.Field(f.Name); existing != nil {
		if existing == f {
			return nil
		}
		return fmt.Errorf("highlight field %q: %w", f.Name, domain.ErrDuplicateKey)
	}
	h.fields = append(h.fields, f)
	return nil
}

// AddFields registers plain fields by name. Names already present are kept.
func (h *Highlighting) AddFields(names ...string) {
	for _, n := range names {
		h.CreateField(n)
	}
}

// SetFields replaces the fields with a comma-separated list of names. Fields
// already registered under a listed name keep their options.
func (h *Highlighting) SetFields(list string) {
	names := component.SplitList(list)
	fields := make([]*Field, 0, len(names))
	for _, n := range names {
		if slices.ContainsFunc(fields, func(f *Field) bool { return f.Name == n }) {
			continue
		}
		f := h.Field(n)
		if f == nil {
			f = &Field{Name: n}
		}
		fields = append(fields, f)
	}
	h.fields = fields
}

// CreateField returns the field registered under name, creating it first
// when needed.
func (h *Highlighting) CreateField(name string) *Field {
	if f := h.Field(name); f != nil {
		return f
	}
	f := &Field{Name: name}
	h.fields = append(h.fields, f)
	return f
}

// Field returns the field registered under name, or nil.
func (h *Highlighting) Field(name string) *Field {
	for _, f := range h.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Fields returns the fields in registration order.
func (h *Highlighting) Fields() []*Field {
	return append([]*Field(nil), h.fields...)
}

// RemoveField drops the field registered under name.
func (h *Highlighting) RemoveField(name string) {
	for i, f := range h.fields {
		if f.Name == name {
			h.fields = append(h.fields[:i], h.fields[i+1:]...)
			return
		}
	}
}

// ClearFields drops every field.
func (h *Highlighting) ClearFields() { h.fields = nil }

// Validate rejects unknown method, fragmenter and boundary scanner values.
func (h *Highlighting) Validate() error {
	errs := []error{
		component.CheckEnum("hl.method", h.Method, MethodUnified, MethodOriginal, MethodFastVector),
		component.CheckEnum("hl.fragmenter", h.Fragmenter, FragmenterGap, FragmenterRegex),
		component.CheckEnum("hl.bs.type", h.BoundaryScannerType,
			BoundaryCharacter, BoundaryWord, BoundarySentence, BoundaryLine, BoundaryWhole),
	}
	for _, f := range h.fields {
		errs = append(errs, component.CheckEnum("f."+f.Name+".hl.fragmenter", f.Fragmenter,
			FragmenterGap, FragmenterRegex))
	}
	return errors.Join(errs...)
}
