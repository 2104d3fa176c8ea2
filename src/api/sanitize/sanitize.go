package sanitize

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// StrictPolicy drops every element and attribute; policies are safe for
// concurrent use, so one shared instance is enough.
var policy = bluemonday.StrictPolicy()

// String cleans one user-supplied text value: outer whitespace trimmed,
// control characters dropped, markup stripped, then HTML-escaped (quotes
// included). The escape step decodes entities first, so the function is
// idempotent: String(String(s)) == String(s).
func String(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(dropControl, s)
	s = policy.Sanitize(s)
	s = html.EscapeString(html.UnescapeString(s))
	return strings.TrimSpace(s)
}

// Value applies String to every text leaf of a nested value, preserving its
// shape. Nil coerces to the empty string; non-text scalars pass through.
// The form endpoint reads flat fields and calls String directly; Value is
// the entry point for callers holding decoded payloads (JSON-submitted
// forms, repeated fields) rather than single values.
func Value(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return String(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Value(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Value(e)
		}
		return out
	default:
		return v
	}
}

func dropControl(r rune) rune {
	if r == '\n' || r == '\t' {
		return r
	}
	if unicode.IsControl(r) {
		return -1
	}
	return r
}
