package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decode reads a single JSON value keeping object key order and duplicate
// keys. Objects become *Map, arrays []any, integral numbers int64 and other
// numbers float64.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode response: trailing data after top-level value")
	}
	return v, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(data []byte) (any, error) {
	return Decode(bytes.NewReader(data))
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped once by Decode
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		return number(t), nil
	default:
		// string, bool, nil
		return t, nil
	}
}

func decodeObject(dec *json.Decoder) (*Map, error) {
	m := &Map{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err //nolint:wrapcheck // wrapped once by Decode
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, want string", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m.Append(key, v)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err //nolint:wrapcheck // wrapped once by Decode
	}
	return m, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err //nolint:wrapcheck // wrapped once by Decode
	}
	return arr, nil
}

func number(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
