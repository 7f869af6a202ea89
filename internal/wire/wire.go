// Package wire models the raw, already-decoded response data of the engine.
//
// The engine encodes named lists in two ways depending on the response
// writer: as nested objects ({"a":1,"b":2}, decoded to *Map) or as flat
// arrays where keys and values alternate (["a",1,"b",2]). Parsers go through
// ToMap/Pairs so they never care which one they got.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Writer selects the response writer mode requested from the engine.
type Writer string

const (
	// WriterJSON requests json with named lists as flat alternating arrays.
	WriterJSON Writer = "json"
	// WriterJSONMap requests json with named lists as objects.
	WriterJSONMap Writer = "json-map"
)

// IsValid reports whether w is a known writer mode.
func (w Writer) IsValid() bool {
	return w == WriterJSON || w == WriterJSONMap
}

// NamedList returns the json.nl parameter value for the writer.
func (w Writer) NamedList() string {
	if w == WriterJSONMap {
		return "map"
	}
	return "flat"
}

// Pair is a single key/value entry of a named list.
type Pair struct {
	Key   string
	Value any
}

// Map is an ordered named list. Duplicate keys are kept.
type Map struct {
	pairs []Pair
}

// NewMap builds a Map from alternating key/value arguments.
// Non-string keys are formatted with fmt.Sprint; a trailing key without a
// value is dropped.
func NewMap(kv ...any) *Map {
	m := &Map{pairs: make([]Pair, 0, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		m.Append(keyString(kv[i]), kv[i+1])
	}
	return m
}

// Append adds a pair at the end.
func (m *Map) Append(key string, value any) {
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
}

// Len returns the number of pairs.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns the pairs in encounter order.
func (m *Map) Pairs() []Pair {
	if m == nil {
		return nil
	}
	return m.pairs
}

// Keys returns the keys in encounter order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	for _, p := range m.Pairs() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Get returns the value of the first pair with the given key.
func (m *Map) Get(key string) (any, bool) {
	for _, p := range m.Pairs() {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// GetAll returns the values of every pair with the given key.
func (m *Map) GetAll(key string) []any {
	var out []any
	for _, p := range m.Pairs() {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// MarshalJSON encodes the map as a JSON object keeping pair order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m.Pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", p.Key, err)
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal value of %q: %w", p.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToMap normalises a named list into a *Map.
// A *Map is returned as is; a []any is decoded as alternating key/value
// pairs in encounter order. Anything else reports false.
func ToMap(raw any) (*Map, bool) {
	switch v := raw.(type) {
	case *Map:
		return v, true
	case []any:
		return NewMap(v...), true
	default:
		return nil, false
	}
}

// Pairs is ToMap followed by (*Map).Pairs.
func Pairs(raw any) []Pair {
	m, ok := ToMap(raw)
	if !ok {
		return nil
	}
	return m.Pairs()
}

// IsFlat reports whether raw is a flat alternating array whose first element
// is a string key. Empty arrays are not flat.
func IsFlat(raw any) bool {
	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return false
	}
	_, ok = arr[0].(string)
	return ok
}

// Lookup walks a path of named-list keys from raw. Each level may be in map
// or flat form.
func Lookup(raw any, path ...string) (any, bool) {
	cur := raw
	for _, key := range path {
		m, ok := ToMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m.Get(key)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Plain converts ordered maps into plain Go maps recursively. Duplicate keys
// keep the first value.
func Plain(raw any) any {
	switch v := raw.(type) {
	case *Map:
		out := make(map[string]any, v.Len())
		for _, p := range v.Pairs() {
			if _, seen := out[p.Key]; !seen {
				out[p.Key] = Plain(p.Value)
			}
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = Plain(v[i])
		}
		return out
	default:
		return v
	}
}

func keyString(k any) string {
	switch v := k.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
