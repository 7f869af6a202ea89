package highlight

import (
	"strings"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// Build emits hl=true, the global hl.* block and the f.<field>.hl.*
// overrides. hl.fl lists the registered fields.
func Build(c component.Component, req *request.Request) error {
	h, err := component.As[*Highlighting](c)
	if err != nil {
		return err
	}
	if err := h.Validate(); err != nil {
		return err
	}

	names := make([]string, len(h.fields))
	for i, f := range h.fields {
		names[i] = f.Name
	}

	req.Add("hl", "true")
	req.Add("hl.method", string(h.Method))
	req.Add("hl.fl", strings.Join(names, ","))
	req.Add("hl.q", h.Query)
	req.Add("hl.qparser", h.QueryParser)
	req.AddBool("hl.requireFieldMatch", h.RequireFieldMatch)
	req.AddBool("hl.usePhraseHighlighter", h.UsePhraseHighlighter)
	req.AddBool("hl.highlightMultiTerm", h.HighlightMultiTerm)
	req.AddInt("hl.snippets", h.Snippets)
	req.AddInt("hl.fragsize", h.FragSize)
	req.AddBool("hl.mergeContiguous", h.MergeContiguous)
	req.AddInt("hl.maxAnalyzedChars", h.MaxAnalyzedChars)
	req.Add("hl.alternateField", h.AlternateField)
	req.AddInt("hl.maxAlternateFieldLength", h.MaxAlternateFieldLength)
	req.AddBool("hl.preserveMulti", h.PreserveMulti)
	req.Add("hl.formatter", h.Formatter)
	req.Add("hl.simple.pre", h.SimplePrefix)
	req.Add("hl.simple.post", h.SimplePostfix)
	req.Add("hl.tag.pre", h.TagPrefix)
	req.Add("hl.tag.post", h.TagPostfix)
	req.Add("hl.encoder", h.Encoder)
	req.Add("hl.fragmenter", string(h.Fragmenter))
	req.Add("hl.fragListBuilder", h.FragListBuilder)
	req.Add("hl.fragmentsBuilder", h.FragmentsBuilder)
	req.AddBool("hl.useFastVectorHighlighter", h.UseFastVectorHighlighter)
	req.AddFloat("hl.regex.slop", h.RegexSlop)
	req.Add("hl.regex.pattern", h.RegexPattern)
	req.AddInt("hl.regex.maxAnalyzedChars", h.RegexMaxAnalyzedChars)
	req.AddInt("hl.phraseLimit", h.PhraseLimit)
	req.AddInt("hl.bs.maxScan", h.BoundaryScannerMaxScan)
	req.Add("hl.bs.chars", h.BoundaryScannerChars)
	req.Add("hl.bs.type", string(h.BoundaryScannerType))
	req.Add("hl.bs.language", h.BoundaryScannerLanguage)
	req.Add("hl.bs.country", h.BoundaryScannerCountry)

	// Options outside this subset cannot be overridden per field.
	for _, f := range h.fields {
		prefix := "f." + f.Name + ".hl."
		req.AddInt(prefix+"snippets", f.Snippets)
		req.AddInt(prefix+"fragsize", f.FragSize)
		req.AddBool(prefix+"mergeContiguous", f.MergeContiguous)
		req.Add(prefix+"alternateField", f.AlternateField)
		req.Add(prefix+"formatter", f.Formatter)
		req.Add(prefix+"simple.pre", f.SimplePrefix)
		req.Add(prefix+"simple.post", f.SimplePostfix)
		req.Add(prefix+"fragmenter", string(f.Fragmenter))
		req.AddBool(prefix+"useFastVectorHighlighter", f.UseFastVectorHighlighter)
	}
	return nil
}
