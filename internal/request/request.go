// Package request holds the flat parameter set sent to the engine.
package request

import (
	"net/url"
	"strconv"
	"strings"
)

// Request is an ordered multimap of wire parameters.
//
// Add keeps one value per name (last write wins); AddMulti appends. Empty
// values are never stored, so unset options simply produce no parameter.
type Request struct {
	params []*param
	index  map[string]*param
}

type param struct {
	name   string
	values []string
}

// New returns an empty request.
func New() *Request {
	return &Request{index: make(map[string]*param)}
}

// Add sets a single-valued parameter. An empty value is ignored.
func (r *Request) Add(name, value string) *Request {
	if value == "" {
		return r
	}
	if p, ok := r.index[name]; ok {
		p.values = []string{value}
		return r
	}
	r.push(name, value)
	return r
}

// AddMulti appends a value to a multi-valued parameter. An empty value is ignored.
func (r *Request) AddMulti(name, value string) *Request {
	if value == "" {
		return r
	}
	if p, ok := r.index[name]; ok {
		p.values = append(p.values, value)
		return r
	}
	r.push(name, value)
	return r
}

// AddBool sets name to "true" or "false" when v is non-nil.
func (r *Request) AddBool(name string, v *bool) *Request {
	if v == nil {
		return r
	}
	return r.Add(name, strconv.FormatBool(*v))
}

// AddInt sets name when v is non-nil.
func (r *Request) AddInt(name string, v *int) *Request {
	if v == nil {
		return r
	}
	return r.Add(name, strconv.Itoa(*v))
}

// AddFloat sets name when v is non-nil.
func (r *Request) AddFloat(name string, v *float64) *Request {
	if v == nil {
		return r
	}
	return r.Add(name, FormatFloat(*v))
}

// AddList sets name to the values joined by sep. Nothing is added for an
// empty list.
func (r *Request) AddList(name string, values []string, sep string) *Request {
	return r.Add(name, strings.Join(values, sep))
}

// Set replaces every value of name. With no values the parameter is removed.
func (r *Request) Set(name string, values ...string) *Request {
	r.Remove(name)
	for _, v := range values {
		r.AddMulti(name, v)
	}
	return r
}

// Remove deletes a parameter.
func (r *Request) Remove(name string) {
	if _, ok := r.index[name]; !ok {
		return
	}
	delete(r.index, name)
	for i, p := range r.params {
		if p.name == name {
			r.params = append(r.params[:i], r.params[i+1:]...)
			return
		}
	}
}

// Get returns the first value of name, or "" when absent.
func (r *Request) Get(name string) string {
	if p, ok := r.index[name]; ok {
		return p.values[0]
	}
	return ""
}

// Has reports whether name is set.
func (r *Request) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Values returns every value of name in insertion order.
func (r *Request) Values(name string) []string {
	p, ok := r.index[name]
	if !ok {
		return nil
	}
	out := make([]string, len(p.values))
	copy(out, p.values)
	return out
}

// Names returns parameter names in first-insertion order.
func (r *Request) Names() []string {
	names := make([]string, len(r.params))
	for i, p := range r.params {
		names[i] = p.name
	}
	return names
}

// Len returns the number of distinct parameter names.
func (r *Request) Len() int { return len(r.params) }

// Form returns the parameters as url.Values.
func (r *Request) Form() url.Values {
	form := make(url.Values, len(r.params))
	for _, p := range r.params {
		form[p.name] = append([]string(nil), p.values...)
	}
	return form
}

// Encode renders the parameters as a URL-encoded query string keeping
// insertion order, unlike url.Values.Encode which sorts by name.
func (r *Request) Encode() string {
	return r.join(url.QueryEscape)
}

// String renders the parameters unescaped, for logs and diagnostics.
func (r *Request) String() string {
	return r.join(func(s string) string { return s })
}

func (r *Request) join(escape func(string) string) string {
	var b strings.Builder
	for _, p := range r.params {
		for _, v := range p.values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(escape(p.name))
			b.WriteByte('=')
			b.WriteString(escape(v))
		}
	}
	return b.String()
}

// Clone returns a deep copy.
func (r *Request) Clone() *Request {
	c := New()
	for _, p := range r.params {
		for _, v := range p.values {
			c.AddMulti(p.name, v)
		}
	}
	return c
}

func (r *Request) push(name, value string) {
	p := &param{name: name, values: []string{value}}
	r.params = append(r.params, p)
	r.index[name] = p
}

// FormatFloat renders a float without exponent or trailing zeros.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
