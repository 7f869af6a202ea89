package solrkit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const booksResponse = `{
	"responseHeader":{"status":0,"QTime":2},
	"response":{"numFound":2,"start":0,"maxScore":3.5,"docs":[
		{"id":"1","title":"Go in Action","price":30,"score":3.5},
		{"id":"2","title":"The Go Programming Language","price":45,"score":1.25}]},
	"facet_counts":{"facet_fields":{"authors":["kernighan",1,"kennedy",1]}}}`

type engine struct {
	calls atomic.Int32
	mu    sync.Mutex
	forms []url.Values
	body  string
}

func newEngine(t *testing.T, body string) (*engine, *httptest.Server) {
	t.Helper()
	e := &engine{body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(raw))
		e.mu.Lock()
		e.forms = append(e.forms, form)
		e.mu.Unlock()
		if r.URL.Path != "/solr/books/select" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"msg":"no core","code":404}}`))
			return
		}
		_, _ = w.Write([]byte(e.body))
	}))
	t.Cleanup(srv.Close)
	return e, srv
}

func (e *engine) lastForm() url.Values {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.forms[len(e.forms)-1]
}

func newClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithURL(srv.URL + "/solr"), WithCore("books")}, opts...)
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttl  time.Duration
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = value
	m.ttl = ttl
	return nil
}

type fakeEmbedder struct {
	vec  []float32
	err  error
	text string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	f.text = text
	return EmbeddingResult{Embedding: f.vec}, f.err
}

func TestSelect(t *testing.T) {
	e, srv := newEngine(t, booksResponse)
	c := newClient(t, srv)

	q := NewQuery("title:go")
	if _, err := q.FacetSet().CreateField("authors", "author"); err != nil {
		t.Fatal(err)
	}
	res, err := c.Select(context.Background(), q)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	form := e.lastForm()
	if form.Get("q") != "title:go" || form.Get("wt") != "json" || form.Get("json.nl") != "flat" {
		t.Errorf("form = %v", form)
	}
	if form.Get("facet.field") != "{!key=authors}author" {
		t.Errorf("facet.field = %q", form.Get("facet.field"))
	}
	if q.Writer != "" {
		t.Error("Select mutated the query writer")
	}

	if res.NumFound() == nil || *res.NumFound() != 2 {
		t.Errorf("numFound = %v", res.NumFound())
	}
	if got := res.FacetSet().Field("authors").Values(); len(got) != 2 || got[0].Value != "kernighan" {
		t.Errorf("authors = %v", got)
	}
}

func TestSelect_StatusError(t *testing.T) {
	_, srv := newEngine(t, booksResponse)
	c := newClient(t, srv)

	_, err := c.SelectCore(context.Background(), "films", NewQuery(""))
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusNotFound || se.Message != "no core" {
		t.Errorf("status error = %+v", se)
	}
}

func TestSelect_InvalidQuery(t *testing.T) {
	e, srv := newEngine(t, booksResponse)
	c := newClient(t, srv)

	q := NewQuery("")
	q.Operator = "XOR"
	if _, err := c.Select(context.Background(), q); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("error = %v, want ErrInvalidConfiguration", err)
	}
	if e.calls.Load() != 0 {
		t.Error("invalid query reached the engine")
	}
}

func TestSelect_NoCore(t *testing.T) {
	_, srv := newEngine(t, booksResponse)
	c, err := New(WithURL(srv.URL + "/solr"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Select(context.Background(), NewQuery("")); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestSelect_CacheHitSkipsEngine(t *testing.T) {
	e, srv := newEngine(t, booksResponse)
	mc := &memCache{}
	c := newClient(t, srv, WithCache(mc, time.Minute))

	for range 3 {
		if _, err := c.Select(context.Background(), NewQuery("title:go")); err != nil {
			t.Fatalf("Select: %v", err)
		}
	}
	if n := e.calls.Load(); n != 1 {
		t.Errorf("engine calls = %d, want 1", n)
	}
	if mc.ttl != time.Minute {
		t.Errorf("cache ttl = %v", mc.ttl)
	}

	if _, err := c.Select(context.Background(), NewQuery("title:rust")); err != nil {
		t.Fatal(err)
	}
	if n := e.calls.Load(); n != 2 {
		t.Errorf("engine calls = %d, want 2 after a different query", n)
	}
}

func TestSelect_KNNText(t *testing.T) {
	e, srv := newEngine(t, booksResponse)
	emb := &fakeEmbedder{vec: []float32{0.25, 0.5}}
	c := newClient(t, srv, WithEmbedder(emb))

	q := NewQuery("")
	q.KNN = &KNN{Field: "vec", TopK: 3, Text: "gophers"}
	if _, err := c.Select(context.Background(), q); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if emb.text != "gophers" {
		t.Errorf("embedded text = %q", emb.text)
	}
	if got, want := e.lastForm().Get("q"), "{!knn f=vec topK=3}[0.25,0.5]"; got != want {
		t.Errorf("q = %q, want %q", got, want)
	}
	if len(q.KNN.Vector) != 0 {
		t.Error("Select mutated the caller's KNN")
	}
}

func TestSelect_KNNTextWithoutEmbedder(t *testing.T) {
	_, srv := newEngine(t, booksResponse)
	c := newClient(t, srv)

	q := NewQuery("")
	q.KNN = &KNN{Field: "vec", Text: "gophers"}
	if _, err := c.Select(context.Background(), q); !errors.Is(err, ErrEmbedderNotConfigured) {
		t.Errorf("error = %v, want ErrEmbedderNotConfigured", err)
	}
}

func TestSelectAll(t *testing.T) {
	e, srv := newEngine(t, booksResponse)
	c := newClient(t, srv, WithConcurrency(2))

	qs := []*Query{NewQuery("a"), NewQuery("b"), NewQuery("c")}
	results, err := c.SelectAll(context.Background(), qs...)
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for i, r := range results {
		if r == nil || r.NumFound() == nil {
			t.Errorf("result %d missing", i)
		}
	}
	if n := e.calls.Load(); n != 3 {
		t.Errorf("engine calls = %d, want 3", n)
	}
}

func TestSelectAll_Error(t *testing.T) {
	_, srv := newEngine(t, booksResponse)
	c := newClient(t, srv)

	bad := NewQuery("")
	bad.Writer = "xml"
	if _, err := c.SelectAll(context.Background(), NewQuery("ok"), bad); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestSearchBuilder(t *testing.T) {
	e, srv := newEngine(t, booksResponse)
	c := newClient(t, srv)

	lo := 10.0
	res, err := c.Search("").
		Query("title:go").
		Where("lang", "en").
		Between("price", &lo, nil).
		Near("location", 59.91, 10.75).Km(25).
		Sort("price", Asc).
		Limit(5).
		Do(context.Background())
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	form := e.lastForm()
	if got, want := form["fq"], []string{`+lang:"en" +price:[10 TO *]`, "{!geofilt}"}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("fq = %q, want %q", got, want)
	}
	if form.Get("sfield") != "location" || form.Get("pt") != "59.91,10.75" || form.Get("d") != "25" {
		t.Errorf("spatial params = %v", form)
	}
	if form.Get("rows") != "5" || form.Get("sort") != "price asc" {
		t.Errorf("rows/sort = %q/%q", form.Get("rows"), form.Get("sort"))
	}

	type book struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Price int    `json:"price"`
	}
	hits, err := Hits[book](res)
	if err != nil {
		t.Fatalf("Hits: %v", err)
	}
	if len(hits) != 2 || hits[1].Item.Title != "The Go Programming Language" || hits[1].Score != 1.25 {
		t.Errorf("hits = %+v", hits)
	}
}

func TestWithPrometheus(t *testing.T) {
	_, srv := newEngine(t, booksResponse)
	reg := prometheus.NewRegistry()
	c := newClient(t, srv, WithPrometheus(reg))
	// a second client on the same registry reuses the collectors
	_ = newClient(t, srv, WithPrometheus(reg))

	if _, err := c.Select(context.Background(), NewQuery("")); err != nil {
		t.Fatal(err)
	}
	if v := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("select", "ok")); v != 1 {
		t.Errorf("operations_total{select,ok} = %v, want 1", v)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(); err == nil {
		t.Error("New without URL succeeded")
	}
	if _, err := New(WithURL("http://localhost:8983/solr"), WithWriter("xml")); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("error = %v, want ErrInvalidConfiguration", err)
	}
}
