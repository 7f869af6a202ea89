package request

import "testing"

func TestAdd_LastWriteWins(t *testing.T) {
	r := New().Add("rows", "10").Add("rows", "20")
	if got := r.Values("rows"); len(got) != 1 || got[0] != "20" {
		t.Errorf("rows = %v, want [20]", got)
	}
}

func TestAdd_SkipsEmpty(t *testing.T) {
	r := New().Add("q", "").AddMulti("fq", "").AddBool("hl", nil).AddInt("rows", nil).AddFloat("tie", nil)
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0: %s", r.Len(), r)
	}
}

func TestAddMulti_Appends(t *testing.T) {
	r := New().AddMulti("facet.field", "a").AddMulti("facet.field", "b")
	got := r.Values("facet.field")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("facet.field = %v", got)
	}
	if r.Get("facet.field") != "a" {
		t.Errorf("Get() = %q, want first value", r.Get("facet.field"))
	}
}

func TestTypedAdders(t *testing.T) {
	yes, n, f := true, 5, 0.25
	r := New().AddBool("facet", &yes).AddInt("facet.limit", &n).AddFloat("tie", &f).
		AddList("fl", []string{"id", "name"}, ",")
	if got := r.String(); got != "facet=true&facet.limit=5&tie=0.25&fl=id,name" {
		t.Errorf("String() = %q", got)
	}
}

func TestEncode_KeepsInsertionOrder(t *testing.T) {
	r := New().Add("q", "a b").AddMulti("fq", "{!tag=t}x:1").Add("facet", "true").AddMulti("fq", "y:2")
	want := "q=a+b&fq=%7B%21tag%3Dt%7Dx%3A1&fq=y%3A2&facet=true"
	if got := r.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestSetAndRemove(t *testing.T) {
	r := New().AddMulti("bq", "a").AddMulti("bq", "b").Add("q", "*:*")
	r.Set("bq", "c")
	if got := r.Values("bq"); len(got) != 1 || got[0] != "c" {
		t.Errorf("bq = %v, want [c]", got)
	}
	r.Set("bq")
	if r.Has("bq") {
		t.Error("Set with no values should remove the parameter")
	}
	if names := r.Names(); len(names) != 1 || names[0] != "q" {
		t.Errorf("Names() = %v", names)
	}
}

func TestClone_Independent(t *testing.T) {
	r := New().AddMulti("fq", "a")
	c := r.Clone()
	c.AddMulti("fq", "b")
	if len(r.Values("fq")) != 1 {
		t.Error("clone mutation leaked into original")
	}
	if form := c.Form(); len(form["fq"]) != 2 {
		t.Errorf("Form() = %v", form)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{1: "1", 0.1: "0.1", 2.5e-7: "0.00000025", -3.75: "-3.75"}
	for in, want := range tests {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}
