package stats

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/domain"
	"github.com/kailas-cloud/solrkit/internal/request"
	"github.com/kailas-cloud/solrkit/internal/wire"
)

func TestBuild(t *testing.T) {
	s := New()
	s.Facets = []string{"inStock"}
	price := s.CreateField("price")
	price.Facets = []string{"cat", "manu"}
	price.Pivots = []string{"p1", "p2"}
	s.CreateField("popularity")

	req := request.New()
	if err := Build(s, req); err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := "stats=true&stats.field={!tag=p1,p2}price&stats.field=popularity" +
		"&f.price.stats.facet=cat&f.price.stats.facet=manu&stats.facet=inStock"
	if got := req.String(); got != want {
		t.Errorf("params =\n%s\nwant\n%s", got, want)
	}
}

func TestBuild_NoFields(t *testing.T) {
	req := request.New()
	if err := Build(New(), req); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if req.Len() != 0 {
		t.Errorf("params = %s, want none", req)
	}
}

func TestAddField(t *testing.T) {
	s := New()
	if err := s.AddField(&Field{}); !errors.Is(err, domain.ErrMissingKey) {
		t.Errorf("err = %v, want ErrMissingKey", err)
	}
	f := &Field{Name: "price"}
	if err := s.AddField(f); err != nil {
		t.Fatalf("AddField: %v", err)
	}
	if err := s.AddField(f); err != nil {
		t.Errorf("re-adding same field: %v", err)
	}
	if err := s.AddField(&Field{Name: "price", Facets: []string{"x"}}); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
	if got := s.Field("price"); got != f || len(s.Fields()) != 1 {
		t.Error("rejected add mutated state")
	}
	s.RemoveField("price")
	if len(s.Fields()) != 0 {
		t.Error("RemoveField did not remove")
	}
}

func TestParse(t *testing.T) {
	data := wire.NewMap("stats", wire.NewMap("stats_fields", wire.NewMap(
		"price", wire.NewMap(
			"min", 0.0, "max", 2199.0, "count", int64(15), "missing", int64(2),
			"sum", 5251.27, "mean", 350.08,
			"facets", wire.NewMap("inStock", wire.NewMap(
				"true", wire.NewMap("min", 11.5, "count", int64(12)),
				"false", wire.NewMap("min", 0.0, "count", int64(3)),
			)),
		),
		"name", wire.NewMap("min", "a", "max", "z", "count", int64(4)),
	)))

	got, err := Parse(component.ParseContext{}, New(), data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := got.(*Result)
	if res.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", res.Len())
	}

	price := res.Field("price")
	if price == nil {
		t.Fatal("price missing")
	}
	if c := price.Count(); c == nil || *c != 15 {
		t.Errorf("count = %v", c)
	}
	if price.Stddev() != nil {
		t.Error("stddev should be absent, not zero")
	}
	in := price.Facet("inStock")
	if in == nil || len(in.Values()) != 2 {
		t.Fatalf("inStock facet = %+v", in)
	}
	if v := in.Values()[0]; v.Value() != "true" || *v.Count() != 12 {
		t.Errorf("first facet value = %s/%v", v.Value(), v.Count())
	}

	name := res.Field("name")
	if name.Min() != "a" || name.Mean() != nil {
		t.Errorf("name min/mean = %v/%v", name.Min(), name.Mean())
	}
}

func TestParse_MissingSection(t *testing.T) {
	got, err := Parse(component.ParseContext{}, New(), wire.NewMap("response", wire.NewMap()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, ok := got.(*Result)
	if !ok || res == nil || res.Len() != 0 {
		t.Errorf("result = %#v, want empty", got)
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	res := ParseFields(wire.NewMap("price", wire.NewMap("min", 1.5, "count", int64(2))))
	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"price":{"min":1.5,"count":2}}` {
		t.Errorf("json = %s", b)
	}
}
