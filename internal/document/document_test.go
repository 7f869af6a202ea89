package document

import "testing"

func TestNew(t *testing.T) {
	doc := New(map[string]any{"id": "42", "title": "go"})
	if v, ok := doc.Get("title"); !ok || v != "go" {
		t.Errorf("Get(title) = %v, %v", v, ok)
	}
	if _, ok := doc.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
	if id := doc.(Fields).ID(); id != "42" {
		t.Errorf("ID() = %q, want 42", id)
	}
}

func TestFactory_Custom(t *testing.T) {
	type fieldMap = Fields
	type product struct {
		fieldMap
		sku string
	}
	var f Factory = func(fields map[string]any) Document {
		sku, _ := fields["sku"].(string)
		return product{fieldMap: fields, sku: sku}
	}
	doc := f(map[string]any{"sku": "A-1"})
	p, ok := doc.(product)
	if !ok || p.sku != "A-1" {
		t.Errorf("doc = %#v", doc)
	}
}
