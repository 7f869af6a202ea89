package facet

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/domain"
	"github.com/kailas-cloud/solrkit/internal/request"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

type heatmap struct{ base }

func (*heatmap) Kind() Kind { return "heatmap" }

func build(t *testing.T, s *FacetSet) *request.Request {
	t.Helper()
	req := request.New()
	if err := Build(s, req); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return req
}

func TestBuild_FieldAndQuery(t *testing.T) {
	s := NewFacetSet()
	if _, err := s.CreateField("f1", "owner"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateQuery("f2", "category:23"); err != nil {
		t.Fatal(err)
	}

	want := "facet=true&facet.field={!key=f1}owner&facet.query={!key=f2}category:23"
	if got := build(t, s).String(); got != want {
		t.Errorf("params = %q, want %q", got, want)
	}
}

func TestParse_FieldAndQuery(t *testing.T) {
	s := NewFacetSet()
	_, _ = s.CreateField("f1", "owner")
	_, _ = s.CreateQuery("f2", "category:23")

	data, err := wire.DecodeBytes([]byte(
		`{"facet_counts":{"facet_fields":{"f1":["a",3,"b",5]},"facet_queries":{"f2":12}}}`))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(component.ParseContext{}, s, data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := got.(*Result)

	f1 := res.Field("f1")
	if f1 == nil {
		t.Fatal("f1 missing")
	}
	want := []Count{{"a", 3}, {"b", 5}}
	if !slices.Equal(f1.Values(), want) {
		t.Errorf("f1 = %v, want %v", f1.Values(), want)
	}
	if q := res.Query("f2"); q == nil || q.Value() != 12 {
		t.Errorf("f2 = %v", q)
	}
	if !slices.Equal(res.Keys(), []string{"f1", "f2"}) {
		t.Errorf("keys = %v", res.Keys())
	}
}

func TestBuild_GlobalsAndFieldOverrides(t *testing.T) {
	s := NewFacetSet()
	s.Sort = SortIndex
	s.Prefix = "ab"
	s.MinCount = component.Ptr(1)
	s.Limit = component.Ptr(10)
	s.Missing = component.Ptr(false)
	s.Method = MethodFC

	f := NewField("cat", "category")
	f.AddExclude("t1", "t2")
	f.Limit = component.Ptr(5)
	f.Sort = SortCount
	f.Offset = component.Ptr(0)
	f.Contains = "x"
	f.ContainsIgnoreCase = component.Ptr(true)
	_ = s.AddFacet(f)

	want := "facet=true&facet.sort=index&facet.prefix=ab&facet.missing=false&facet.mincount=1" +
		"&facet.limit=10&facet.method=fc&facet.field={!key=cat ex=t1,t2}category" +
		"&f.category.facet.limit=5&f.category.facet.sort=count&f.category.facet.contains=x" +
		"&f.category.facet.contains.ignoreCase=true&f.category.facet.offset=0"
	if got := build(t, s).String(); got != want {
		t.Errorf("params =\n%s\nwant\n%s", got, want)
	}
}

func TestBuild_Empty(t *testing.T) {
	if req := build(t, NewFacetSet()); req.Len() != 0 {
		t.Errorf("params = %s, want none", req)
	}
}

func TestBuild_Range(t *testing.T) {
	s := NewFacetSet()
	r, _ := s.CreateRange("price", "price", "1", "100", "10")
	r.HardEnd = component.Ptr(true)
	r.MinCount = component.Ptr(2)
	r.Other = []RangeOther{OtherBefore, OtherAfter}
	r.Include = []RangeInclude{IncludeLower, IncludeEdge}
	r.AddExclude("p")

	want := "facet=true&facet.range={!key=price ex=p}price&f.price.facet.range.start=1" +
		"&f.price.facet.range.end=100&f.price.facet.range.gap=10&f.price.facet.range.hardend=true" +
		"&f.price.facet.mincount=2&f.price.facet.range.other=before&f.price.facet.range.other=after" +
		"&f.price.facet.range.include=lower&f.price.facet.range.include=edge"
	if got := build(t, s).String(); got != want {
		t.Errorf("params =\n%s\nwant\n%s", got, want)
	}
}

func TestBuild_Interval(t *testing.T) {
	s := NewFacetSet()
	i, _ := s.CreateInterval("prices", "price")
	i.AddSet("[0,10)").AddKeyedSet("high", "[10,*]")

	want := `facet=true&facet.interval={!key=prices}price&f.price.facet.interval.set=[0,10)` +
		`&f.price.facet.interval.set={!key="high"}[10,*]`
	if got := build(t, s).String(); got != want {
		t.Errorf("params =\n%s\nwant\n%s", got, want)
	}
}

func TestBuild_Pivot(t *testing.T) {
	s := NewFacetSet()
	p, _ := s.CreatePivot("pv", "cat", "manu")
	p.MinCount = component.Ptr(0)
	p.AddExclude("x")

	want := "facet=true&facet.pivot={!key=pv ex=x}cat,manu&facet.pivot.mincount=0"
	if got := build(t, s).String(); got != want {
		t.Errorf("params = %q, want %q", got, want)
	}
}

func TestBuild_PivotStatsOverridesKey(t *testing.T) {
	s := NewFacetSet()
	p, _ := s.CreatePivot("mykey", "cat", "manu")
	p.Stats = []string{"s1"}

	req := build(t, s)
	if got := req.Get("facet.pivot"); got != "{!stats=s1}cat,manu" {
		t.Errorf("facet.pivot = %q", got)
	}
	if p.Key() != "cat,manu" {
		t.Errorf("key = %q, want joined field list", p.Key())
	}
	if s.Facet("cat,manu") != p {
		t.Error("facet not reachable under its new key")
	}
}

func TestPivot_SetFields(t *testing.T) {
	s := NewFacetSet()
	p, _ := s.CreatePivot("pv")
	p.SetFields("cat, manu ,").SetStats(" s1,s2")

	if got := build(t, s).Get("facet.pivot"); got != "{!stats=s1,s2}cat,manu" {
		t.Errorf("facet.pivot = %q", got)
	}
}

func TestBuild_PivotStatsKeyConflict(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(s *FacetSet)
		wantErr error
	}{
		{
			name: "field facet owns the field list",
			setup: func(s *FacetSet) {
				_, _ = s.CreateField("cat", "cat")
				p, _ := s.CreatePivot("pv", "cat")
				p.Stats = []string{"s1"}
			},
			wantErr: domain.ErrDuplicateKey,
		},
		{
			name: "query facet owns the field list",
			setup: func(s *FacetSet) {
				_, _ = s.CreateQuery("cat,manu", "cat:1")
				p, _ := s.CreatePivot("pv", "cat", "manu")
				p.Stats = []string{"s1"}
			},
			wantErr: domain.ErrDuplicateKey,
		},
		{
			name: "pivot without stats keeps its key",
			setup: func(s *FacetSet) {
				_, _ = s.CreateField("cat", "cat")
				_, _ = s.CreatePivot("pv", "cat")
			},
		},
		{
			name: "pivot already keyed by its field list",
			setup: func(s *FacetSet) {
				p, _ := s.CreatePivot("cat", "cat")
				p.Stats = []string{"s1"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFacetSet()
			tt.setup(s)
			req := request.New()
			err := Build(s, req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && req.String() != "" {
				t.Errorf("params = %q, want none on error", req.String())
			}
			if tt.wantErr != nil && s.Facet("pv") == nil {
				t.Error("rejected pivot was rekeyed")
			}
		})
	}
}

func TestBuild_MultiQuery(t *testing.T) {
	s := NewFacetSet()
	m, _ := s.CreateMultiQuery("mq")
	_, _ = m.CreateQuery("k1", "cat:1")
	_, _ = m.CreateQuery("k2", "cat:2", "own")
	m.AddExclude("shared")

	req := build(t, s)
	want := []string{"{!key=k1 ex=shared}cat:1", "{!key=k2 ex=own,shared}cat:2"}
	if got := req.Values("facet.query"); !slices.Equal(got, want) {
		t.Errorf("facet.query = %v, want %v", got, want)
	}
}

func TestMultiQuery_ExcludePropagation(t *testing.T) {
	m := NewMultiQuery("mq")
	q1, _ := m.CreateQuery("k1", "a:1")
	q2, _ := m.CreateQuery("k2", "a:2", "own")

	m.AddExclude("t")
	for _, q := range []*Query{q1, q2} {
		if !slices.Contains(q.Excludes(), "t") {
			t.Errorf("%s excludes = %v, want t", q.Key(), q.Excludes())
		}
	}

	m.RemoveExclude("t")
	for _, q := range []*Query{q1, q2} {
		if slices.Contains(q.Excludes(), "t") {
			t.Errorf("%s still excludes t", q.Key())
		}
	}
	if !slices.Equal(q2.Excludes(), []string{"own"}) {
		t.Errorf("k2 excludes = %v, want [own]", q2.Excludes())
	}

	m.AddExclude("a", "b")
	m.ClearExcludes()
	if len(q1.Excludes())+len(q2.Excludes())+len(m.Excludes()) != 0 {
		t.Error("ClearExcludes did not propagate")
	}
}

func TestMultiQuery_MergeAtAdd(t *testing.T) {
	m := NewMultiQuery("mq")
	m.AddExclude("p1", "p2")
	q := NewQuery("k", "x:1")
	q.AddExclude("c1", "p1")
	if err := m.AddQuery(q); err != nil {
		t.Fatal(err)
	}
	if want := []string{"c1", "p1", "p2"}; !slices.Equal(q.Excludes(), want) {
		t.Errorf("excludes = %v, want %v", q.Excludes(), want)
	}
}

func TestMultiQuery_DuplicateKey(t *testing.T) {
	m := NewMultiQuery("mq")
	first, _ := m.CreateQuery("k", "a:1")

	_, err := m.CreateQuery("k", "a:2")
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
	if len(m.Queries()) != 1 || m.Query("k") != first || first.Query != "a:1" {
		t.Error("rejected add mutated state")
	}
	if _, err := m.CreateQuery("", "a:3"); !errors.Is(err, domain.ErrMissingKey) {
		t.Errorf("err = %v, want ErrMissingKey", err)
	}
	if err := m.AddQuery(first); err != nil {
		t.Errorf("re-adding the same child: %v", err)
	}
}

func TestFacetSet_AddFacet(t *testing.T) {
	s := NewFacetSet()
	if err := s.AddFacet(NewField("", "x")); !errors.Is(err, domain.ErrMissingKey) {
		t.Errorf("err = %v, want ErrMissingKey", err)
	}
	_, _ = s.CreateField("k", "x")
	if _, err := s.CreateQuery("k", "y:1"); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
	if len(s.Facets()) != 1 {
		t.Errorf("facets = %d, want 1", len(s.Facets()))
	}
	s.RemoveFacet("k")
	if s.Facet("k") != nil {
		t.Error("RemoveFacet did not remove")
	}
}

func TestValidate_RejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name string
		set  func(s *FacetSet)
	}{
		{"global sort", func(s *FacetSet) { s.Sort = "random" }},
		{"global method", func(s *FacetSet) { s.Method = "magic" }},
		{"field sort", func(s *FacetSet) {
			f, _ := s.CreateField("f", "x")
			f.Sort = "desc"
		}},
		{"range other", func(s *FacetSet) {
			r, _ := s.CreateRange("r", "x", "0", "1", "1")
			r.Other = []RangeOther{"sideways"}
		}},
		{"range include", func(s *FacetSet) {
			r, _ := s.CreateRange("r", "x", "0", "1", "1")
			r.Include = []RangeInclude{"inner"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFacetSet()
			_, _ = s.CreateQuery("q", "*:*")
			tt.set(s)
			req := request.New()
			if err := Build(s, req); !errors.Is(err, domain.ErrInvalidConfiguration) {
				t.Errorf("err = %v, want ErrInvalidConfiguration", err)
			}
			if req.Len() != 0 {
				t.Errorf("params emitted before validation: %s", req)
			}
		})
	}
}

func TestUnsupportedKind(t *testing.T) {
	s := NewFacetSet()
	h := &heatmap{base{key: "h"}}
	_ = s.AddFacet(h)

	if err := Build(s, request.New()); !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("Build err = %v, want ErrUnsupportedType", err)
	}
	if _, err := Parse(component.ParseContext{}, s, wire.NewMap()); !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("Parse err = %v, want ErrUnsupportedType", err)
	}
}

func TestParse_MissingFacetsSkipped(t *testing.T) {
	s := NewFacetSet()
	_, _ = s.CreateField("f1", "owner")
	_, _ = s.CreateRange("r", "price", "0", "10", "1")
	m, _ := s.CreateMultiQuery("mq")
	_, _ = m.CreateQuery("k1", "a:1")

	got, err := Parse(component.ParseContext{}, s, wire.NewMap("responseHeader", wire.NewMap()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := got.(*Result)
	if res == nil || res.Len() != 0 {
		t.Errorf("result = %v, want empty", res.Keys())
	}
	if _, ok := res.Facet("f1"); ok {
		t.Error("absent facet reported present")
	}
}

func TestParse_MultiQueryPartial(t *testing.T) {
	s := NewFacetSet()
	m, _ := s.CreateMultiQuery("mq")
	_, _ = m.CreateQuery("k1", "a:1")
	_, _ = m.CreateQuery("k2", "a:2")

	data := wire.NewMap("facet_counts", wire.NewMap("facet_queries", wire.NewMap("k2", int64(7))))
	got, _ := Parse(component.ParseContext{}, s, data)
	mq := got.(*Result).MultiQuery("mq")
	if mq == nil {
		t.Fatal("mq missing")
	}
	if mq.Query("k1") != nil {
		t.Error("k1 should be absent")
	}
	if q := mq.Query("k2"); q == nil || q.Value() != 7 {
		t.Errorf("k2 = %v", q)
	}
}

func TestParse_RangeFlatAndMap(t *testing.T) {
	s := NewFacetSet()
	r, _ := s.CreateRange("price", "price", "0", "20", "10")
	r.Other = []RangeOther{OtherBefore}

	tests := map[string]any{
		"map": wire.NewMap("facet_counts", wire.NewMap("facet_ranges", wire.NewMap(
			"price", wire.NewMap("counts", wire.NewMap("0", int64(4), "10", int64(6)),
				"gap", int64(10), "start", int64(0), "end", int64(20), "before", int64(1))))),
		"flat": wire.NewMap("facet_counts", wire.NewMap("facet_ranges", []any{
			"price", []any{"counts", []any{"0", int64(4), "10", int64(6)},
				"gap", int64(10), "start", int64(0), "end", int64(20), "before", int64(1)}})),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(component.ParseContext{}, s, data)
			if err != nil {
				t.Fatal(err)
			}
			rr := got.(*Result).Range("price")
			if rr == nil {
				t.Fatal("range missing")
			}
			if want := []Count{{"0", 4}, {"10", 6}}; !slices.Equal(rr.Values(), want) {
				t.Errorf("counts = %v", rr.Values())
			}
			if b := rr.Before(); b == nil || *b != 1 {
				t.Errorf("before = %v", b)
			}
			if rr.After() != nil {
				t.Error("after should be absent")
			}
			if rr.Gap() != "10" || rr.End() != "20" {
				t.Errorf("gap/end = %s/%s", rr.Gap(), rr.End())
			}
		})
	}
}

func TestParse_PivotWithStats(t *testing.T) {
	s := NewFacetSet()
	p, _ := s.CreatePivot("ignored", "cat", "inStock")
	p.Stats = []string{"piv1"}
	_ = Build(s, request.New())

	data, err := wire.DecodeBytes([]byte(`{"facet_counts":{"facet_pivot":{"cat,inStock":[
		{"field":"cat","value":"electronics","count":12,
		 "pivot":[{"field":"inStock","value":true,"count":8}],
		 "stats":{"stats_fields":{"price":{"min":1.5,"count":12}}}}]}}}`))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(component.ParseContext{}, s, data)
	if err != nil {
		t.Fatal(err)
	}
	pv := got.(*Result).Pivot("cat,inStock")
	if pv == nil || len(pv.Items()) != 1 {
		t.Fatalf("pivot = %+v", pv)
	}
	top := pv.Items()[0]
	if top.Field() != "cat" || top.Value() != "electronics" || top.Count() != 12 {
		t.Errorf("top = %s/%v/%d", top.Field(), top.Value(), top.Count())
	}
	if len(top.Pivot()) != 1 || top.Pivot()[0].Value() != true {
		t.Errorf("nested = %+v", top.Pivot())
	}
	if top.Stats() == nil || top.Stats().Field("price") == nil {
		t.Error("pivot stats missing")
	}
	if top.Pivot()[0].Stats() != nil {
		t.Error("leaf without stats should report nil")
	}
}

func TestParse_BadCounts(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *FacetSet)
		data  any
	}{
		{
			name:  "query",
			setup: func(s *FacetSet) { _, _ = s.CreateQuery("q", "a:1") },
			data:  wire.NewMap("facet_counts", wire.NewMap("facet_queries", wire.NewMap("q", "many"))),
		},
		{
			name: "multi query",
			setup: func(s *FacetSet) {
				m, _ := s.CreateMultiQuery("mq")
				_, _ = m.CreateQuery("k1", "a:1")
			},
			data: wire.NewMap("facet_counts", wire.NewMap("facet_queries", wire.NewMap("k1", 1.5))),
		},
		{
			name:  "nested pivot",
			setup: func(s *FacetSet) { _, _ = s.CreatePivot("pv", "cat", "manu") },
			data: wire.NewMap("facet_counts", wire.NewMap("facet_pivot", wire.NewMap("pv", []any{
				wire.NewMap("field", "cat", "value", "a", "count", int64(2), "pivot", []any{
					wire.NewMap("field", "manu", "value", "b", "count", "two"),
				}),
			}))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFacetSet()
			tt.setup(s)
			if _, err := Parse(component.ParseContext{}, s, tt.data); !errors.Is(err, domain.ErrMalformedResponse) {
				t.Errorf("err = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestParse_Interval(t *testing.T) {
	s := NewFacetSet()
	_, _ = s.CreateInterval("prices", "price")
	data := wire.NewMap("facet_counts", wire.NewMap("facet_intervals", wire.NewMap(
		"prices", wire.NewMap("[0,10)", int64(3), "high", int64(9)))))

	got, _ := Parse(component.ParseContext{}, s, data)
	iv := got.(*Result).Interval("prices")
	if n, ok := iv.Count("high"); !ok || n != 9 {
		t.Errorf("high = %d, %v", n, ok)
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	s := NewFacetSet()
	_, _ = s.CreateField("f1", "owner")
	_, _ = s.CreateQuery("f2", "x")
	data := wire.NewMap("facet_counts", wire.NewMap(
		"facet_fields", wire.NewMap("f1", []any{"b", int64(5), "a", int64(3)}),
		"facet_queries", wire.NewMap("f2", int64(12))))
	got, _ := Parse(component.ParseContext{}, s, data)

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"f1":{"b":5,"a":3},"f2":12}` {
		t.Errorf("json = %s", b)
	}
}
