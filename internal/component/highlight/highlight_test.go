package highlight

import (
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/domain"
	"github.com/kailas-cloud/solrkit/internal/request"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

func TestBuild(t *testing.T) {
	h := New()
	h.Snippets = component.Ptr(3)
	h.FragSize = component.Ptr(100)
	h.SimplePrefix = "<b>"
	h.SimplePostfix = "</b>"
	h.RequireFieldMatch = component.Ptr(true)
	h.Fragmenter = FragmenterRegex
	h.RegexSlop = component.Ptr(0.5)
	h.BoundaryScannerType = BoundaryWord

	title := h.CreateField("title")
	title.Snippets = component.Ptr(1)
	title.SimplePrefix = "<em>"
	title.Fragmenter = FragmenterGap
	h.AddFields("body", "title")

	req := request.New()
	if err := Build(h, req); err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := "hl=true&hl.fl=title,body&hl.requireFieldMatch=true&hl.snippets=3&hl.fragsize=100" +
		"&hl.simple.pre=<b>&hl.simple.post=</b>&hl.fragmenter=regex&hl.regex.slop=0.5&hl.bs.type=WORD" +
		"&f.title.hl.snippets=1&f.title.hl.simple.pre=<em>&f.title.hl.fragmenter=gap"
	if got := req.String(); got != want {
		t.Errorf("params =\n%s\nwant\n%s", got, want)
	}
}

func TestBuild_FieldFallsBackToGlobal(t *testing.T) {
	h := New()
	h.Formatter = "simple"
	h.CreateField("body")

	req := request.New()
	_ = Build(h, req)
	if req.Has("f.body.hl.formatter") {
		t.Error("unset field override should not be emitted")
	}
	if req.Get("hl.formatter") != "simple" {
		t.Errorf("hl.formatter = %q", req.Get("hl.formatter"))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		set  func(h *Highlighting)
	}{
		{"fragmenter", func(h *Highlighting) { h.Fragmenter = "sentence" }},
		{"boundary scanner", func(h *Highlighting) { h.BoundaryScannerType = "word" }},
		{"method", func(h *Highlighting) { h.Method = "fancy" }},
		{"field fragmenter", func(h *Highlighting) { h.CreateField("x").Fragmenter = "nope" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			tt.set(h)
			if err := Build(h, request.New()); !errors.Is(err, domain.ErrInvalidConfiguration) {
				t.Errorf("err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestAddField(t *testing.T) {
	h := New()
	if err := h.AddField(&Field{}); !errors.Is(err, domain.ErrMissingKey) {
		t.Errorf("err = %v, want ErrMissingKey", err)
	}
	_ = h.AddField(&Field{Name: "a"})
	if err := h.AddField(&Field{Name: "a"}); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
	h.RemoveField("a")
	if len(h.Fields()) != 0 {
		t.Error("RemoveField did not remove")
	}
}

func TestParse(t *testing.T) {
	tests := map[string]any{
		"map": wire.NewMap("highlighting", wire.NewMap(
			"doc1", wire.NewMap("title", []any{"<b>go</b> lang"}, "body", []any{"a", "b"}),
			"doc2", wire.NewMap(),
		)),
		"flat": wire.NewMap("highlighting", []any{
			"doc1", []any{"title", []any{"<b>go</b> lang"}, "body", []any{"a", "b"}},
			"doc2", []any{},
		}),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(component.ParseContext{}, New(), data)
			if err != nil {
				t.Fatal(err)
			}
			res := got.(*Result)
			if res.Len() != 2 {
				t.Fatalf("Len() = %d, want 2", res.Len())
			}
			d := res.Document("doc1")
			if !slices.Equal(d.Fields(), []string{"title", "body"}) {
				t.Errorf("fields = %v", d.Fields())
			}
			if !slices.Equal(d.Field("body"), []string{"a", "b"}) {
				t.Errorf("body = %v", d.Field("body"))
			}
			if d.Field("missing") != nil {
				t.Error("missing field should be nil")
			}
			if res.Document("doc3") != nil {
				t.Error("unknown document should be nil")
			}
		})
	}
}

func TestParse_Missing(t *testing.T) {
	got, err := Parse(component.ParseContext{}, New(), wire.NewMap())
	if err != nil {
		t.Fatal(err)
	}
	if res := got.(*Result); res.Len() != 0 {
		t.Errorf("Len() = %d, want 0", res.Len())
	}
}

func TestSetFields(t *testing.T) {
	h := New()
	body := h.CreateField("body")
	body.Snippets = component.Ptr(3)
	h.CreateField("old")

	h.SetFields(" title, body,, title ")

	var names []string
	for _, f := range h.Fields() {
		names = append(names, f.Name)
	}
	if want := []string{"title", "body"}; !slices.Equal(names, want) {
		t.Errorf("fields = %v, want %v", names, want)
	}
	if h.Field("body") != body || *h.Field("body").Snippets != 3 {
		t.Error("body lost its options")
	}
	if h.Field("old") != nil {
		t.Error("old still registered")
	}
}
