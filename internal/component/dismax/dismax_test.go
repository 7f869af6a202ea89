package dismax

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/domain"
	"github.com/kailas-cloud/solrkit/internal/request"
)

func TestBuild(t *testing.T) {
	d := New()
	d.QueryAlternative = "*:*"
	d.QueryFields = "title^2 body"
	d.MinimumMatch = "2<-25%"
	d.PhraseFields = "title"
	d.PhraseSlop = component.Ptr(2)
	d.QueryPhraseSlop = component.Ptr(1)
	d.Tie = component.Ptr(0.1)
	d.BoostQueries = []string{"cat:book^2", "inStock:true"}
	d.BoostFunctions = "recip(rord(date),1,1000,1000)"

	req := request.New()
	if err := Build(d, req); err != nil {
		t.Fatal(err)
	}
	want := "defType=dismax&q.alt=*:*&qf=title^2 body&mm=2<-25%&pf=title&ps=2&qs=1&tie=0.1" +
		"&bq=cat:book^2&bq=inStock:true&bf=recip(rord(date),1,1000,1000)"
	if got := req.String(); got != want {
		t.Errorf("params =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildEdisMax(t *testing.T) {
	e := NewEdisMax()
	e.QueryFields = "title"
	e.PhraseBigramFields = "title~2"
	e.PhraseBigramSlop = component.Ptr(3)
	e.PhraseTrigramFields = "body"
	e.PhraseTrigramSlop = component.Ptr(4)
	e.Boost = "log(popularity)"
	e.UserFields = "title -body"

	req := request.New()
	if err := BuildEdisMax(e, req); err != nil {
		t.Fatal(err)
	}
	want := "defType=edismax&qf=title&pf2=title~2&ps2=3&pf3=body&ps3=4&boost=log(popularity)&uf=title -body"
	if got := req.String(); got != want {
		t.Errorf("params =\n%s\nwant\n%s", got, want)
	}
}

func TestBuild_QueryParserOverride(t *testing.T) {
	e := NewEdisMax()
	e.QueryParser = "synonym_edismax"
	req := request.New()
	_ = BuildEdisMax(e, req)
	if got := req.Get("defType"); got != "synonym_edismax" {
		t.Errorf("defType = %q", got)
	}
}

func TestBuild_WrongComponent(t *testing.T) {
	if err := Build(NewEdisMax(), request.New()); !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}
