package grouping

import (
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/document"
	"github.com/kailas-cloud/solrkit/internal/domain"
	"github.com/kailas-cloud/solrkit/internal/request"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

func TestBuild(t *testing.T) {
	g := New()
	g.Fields = []string{"manu", "cat"}
	g.Queries = []string{"price:[0 TO 99]"}
	g.Limit = component.Ptr(3)
	g.Offset = component.Ptr(0)
	g.Sort = "price asc"
	g.NumberOfGroups = component.Ptr(true)
	g.Truncate = component.Ptr(false)
	g.CachePercentage = component.Ptr(50)
	g.Format = FormatGrouped

	req := request.New()
	if err := Build(g, req); err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := "group=true&group.field=manu&group.field=cat&group.query=price:[0 TO 99]" +
		"&group.limit=3&group.offset=0&group.sort=price asc&group.ngroups=true" +
		"&group.truncate=false&group.cache.percent=50&group.format=grouped"
	if got := req.String(); got != want {
		t.Errorf("params =\n%s\nwant\n%s", got, want)
	}
}

func TestBuild_InvalidFormat(t *testing.T) {
	g := New()
	g.Format = "nested"
	if err := Build(g, request.New()); !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Errorf("err = %v, want ErrInvalidConfiguration", err)
	}
}

const groupedJSON = `{"grouped":{
	"manu":{"matches":5,"ngroups":2,"groups":[
		{"groupValue":"apple","doclist":{"numFound":2,"start":0,"maxScore":1.5,"docs":[{"id":"a1"},{"id":"a2"}]}},
		{"groupValue":null,"doclist":{"numFound":1,"start":0,"docs":[{"id":"x"}]}}]},
	"price:[0 TO 99]":{"matches":5,"doclist":{"numFound":3,"start":0,"docs":[{"id":"c"}]}}}}`

func TestParse(t *testing.T) {
	g := New()
	g.Fields = []string{"manu", "absent"}
	g.Queries = []string{"price:[0 TO 99]"}

	data, err := wire.DecodeBytes([]byte(groupedJSON))
	if err != nil {
		t.Fatal(err)
	}
	var made int
	ctx := component.ParseContext{Documents: func(f map[string]any) document.Document {
		made++
		return document.New(f)
	}}
	got, err := Parse(ctx, g, data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := got.(*Result)
	if res.Len() != 2 || res.Group("absent") != nil {
		t.Fatalf("keys = %v", res.Keys())
	}

	manu := res.FieldGroup("manu")
	if *manu.Matches() != 5 || *manu.NumberOfGroups() != 2 || len(manu.ValueGroups()) != 2 {
		t.Fatalf("manu = %+v", manu)
	}
	apple := manu.ValueGroups()[0]
	if apple.Value() != "apple" || *apple.NumFound() != 2 || *apple.MaxScore() != 1.5 {
		t.Errorf("apple group = %v/%v", apple.Value(), apple.NumFound())
	}
	if id, _ := apple.Documents()[1].Get("id"); id != "a2" {
		t.Errorf("second doc id = %v", id)
	}
	if none := manu.ValueGroups()[1]; none.Value() != nil || none.MaxScore() != nil {
		t.Errorf("null group = %v/%v", none.Value(), none.MaxScore())
	}

	q := res.QueryGroup("price:[0 TO 99]")
	if q == nil || *q.NumFound() != 3 || *q.Matches() != 5 {
		t.Errorf("query group = %+v", q)
	}
	if made != 4 {
		t.Errorf("factory called %d times, want 4", made)
	}
}

func TestParse_SimpleFormatAndFunction(t *testing.T) {
	g := New()
	g.Function = "floor(price)"
	g.Format = FormatSimple
	data := wire.NewMap("grouped", wire.NewMap("floor(price)", wire.NewMap(
		"matches", int64(4),
		"doclist", wire.NewMap("numFound", int64(4), "start", int64(0), "docs", []any{wire.NewMap("id", "1")}),
	)))

	got, _ := Parse(component.ParseContext{}, g, data)
	fg := got.(*Result).FieldGroup("floor(price)")
	if fg == nil || len(fg.ValueGroups()) != 1 {
		t.Fatalf("group = %+v", fg)
	}
	if fg.NumberOfGroups() != nil {
		t.Error("ngroups should be absent")
	}
	if vg := fg.ValueGroups()[0]; *vg.NumFound() != 4 || len(vg.Documents()) != 1 {
		t.Errorf("doclist = %v/%d", vg.NumFound(), len(vg.Documents()))
	}
}

func TestParse_Missing(t *testing.T) {
	g := New()
	g.Fields = []string{"manu"}
	got, err := Parse(component.ParseContext{}, g, wire.NewMap())
	if err != nil {
		t.Fatal(err)
	}
	if res := got.(*Result); res == nil || res.Len() != 0 {
		t.Errorf("result = %+v, want empty", res)
	}
}

func TestSetFields(t *testing.T) {
	tests := []struct {
		list string
		want []string
	}{
		{"manu", []string{"manu"}},
		{"manu, cat", []string{"manu", "cat"}},
		{" , ", []string{}},
	}

	for _, tt := range tests {
		g := New().SetFields(tt.list)
		if !slices.Equal(g.Fields, tt.want) {
			t.Errorf("SetFields(%q) = %v, want %v", tt.list, g.Fields, tt.want)
		}
	}
}
