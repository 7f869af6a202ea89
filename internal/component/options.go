package component

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/solrkit/internal/domain"
)

// Ptr returns a pointer to v. Optional options are pointers so that an
// explicit zero differs from unset.
func Ptr[T any](v T) *T { return &v }

// SplitList splits a comma-separated option, trimming elements and dropping
// empty ones.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// List is a list-valued option. It decodes from either a JSON array or a
// comma-separated string, both normalised through SplitList rules.
type List []string

// UnmarshalJSON accepts ["a","b"] or "a, b".
func (l *List) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = SplitList(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("list option: %w", err)
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	*l = out
	return nil
}

// CheckEnum returns a ConfigError when v is set and not one of allowed.
func CheckEnum[T ~string](option string, v T, allowed ...T) error {
	if v == "" {
		return nil
	}
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return domain.NewInvalidOption(option, string(v))
}

// Validate runs c's Validate when it has one.
func Validate(c Component) error {
	if v, ok := c.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// Excludes is an ordered, duplicate-free set of filter tags.
type Excludes struct {
	tags []string
}

// Add appends tags that are not present yet. Empty tags are ignored.
func (e *Excludes) Add(tags ...string) {
	for _, t := range tags {
		if t != "" && !e.Has(t) {
			e.tags = append(e.tags, t)
		}
	}
}

// Remove deletes tag.
func (e *Excludes) Remove(tag string) {
	for i, t := range e.tags {
		if t == tag {
			e.tags = append(e.tags[:i], e.tags[i+1:]...)
			return
		}
	}
}

// Clear removes every tag.
func (e *Excludes) Clear() { e.tags = nil }

// Has reports whether tag is present.
func (e *Excludes) Has(tag string) bool {
	for _, t := range e.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Values returns a copy of the tags in insertion order.
func (e *Excludes) Values() []string {
	return append([]string(nil), e.tags...)
}

// Len returns the number of tags.
func (e *Excludes) Len() int { return len(e.tags) }
