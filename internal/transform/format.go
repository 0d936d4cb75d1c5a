package transform

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// FormatterFunc turns a raw field value into a display string. Formatters
// are total: malformed input yields a fallback string, never an error.
type FormatterFunc func(any) string

// LinkMode controls how URL fields are rendered. Anchor decoration is
// display-only; file exports always get the raw URL.
type LinkMode int

const (
	LinksHTML LinkMode = iota
	LinksRaw
)

var strictPolicy = bluemonday.StrictPolicy()

// Formatters returns the per-field display formatter registry. Fields not
// present in the registry render via stringify.
func Formatters(links LinkMode) map[string]FormatterFunc {
	link := RawURL
	if links == LinksHTML {
		link = FormatHyperlink
	}
	return map[string]FormatterFunc{
		"placeOfPerformance": FormatPlaceOfPerformance,
		"responseDeadLine":   FormatDeadline,
		"fullParentPathName": Initialism,
		"uiLink":             link,
		"title":              SanitizeText,
	}
}

// FormatField renders a single field using the registry, falling back to the
// plain string form for unregistered fields.
func FormatField(field string, v any, reg map[string]FormatterFunc) string {
	if f, ok := reg[field]; ok {
		return f(v)
	}
	return stringify(v)
}

// FormatPlaceOfPerformance composes "{city}, {state} {zip}" from a nested
// place-of-performance structure, substituting "N/A" for missing parts.
// A structure with nothing usable yields "Address Unavailable"; anything
// that is not a mapping yields "N/A".
func FormatPlaceOfPerformance(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return "N/A"
	}
	city := nestedString(m, "city", "name")
	state := nestedString(m, "state", "code")
	zip := ""
	if z, ok := stringField(Record(m), "zip"); ok {
		zip = z
	}
	if city == "" {
		city = "N/A"
	}
	if state == "" {
		state = "N/A"
	}
	if zip == "" {
		zip = "N/A"
	}
	if city == "N/A" && state == "N/A" && zip == "N/A" {
		return "Address Unavailable"
	}
	return strings.Trim(fmt.Sprintf("%s, %s %s", city, state, zip), ", ")
}

func nestedString(m map[string]any, outer, inner string) string {
	sub, ok := m[outer].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := stringField(Record(sub), inner)
	return s
}

// FormatDeadline renders an ISO-ish timestamp as "YYYY-MM-DD HH:MM UTC".
// Unparseable values yield "Invalid Date"; missing or non-string values
// yield "N/A".
func FormatDeadline(v any) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "N/A"
	}
	t, err := ParseDeadline(s)
	if err != nil {
		return "Invalid Date"
	}
	return t.Format("2006-01-02 15:04") + " UTC"
}

// Initialism reduces a space-separated organizational path to the uppercased
// first letter of each word, e.g. "Department Of Example Agency" -> "DOEA".
func Initialism(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		b.WriteRune(unicode.ToUpper([]rune(word)[0]))
	}
	return b.String()
}

// FormatHyperlink wraps a URL in an anchor for browser display. Not for
// file output; exports use RawURL.
func FormatHyperlink(v any) string {
	u, ok := v.(string)
	if !ok || u == "" {
		return ""
	}
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener">View on SAM.gov</a>`, strictPolicy.Sanitize(u))
}

// RawURL returns the bare URL string for file output.
func RawURL(v any) string {
	u, ok := v.(string)
	if !ok {
		return ""
	}
	return u
}

// SanitizeText strips any HTML from a free-text field before display.
func SanitizeText(v any) string {
	s, ok := v.(string)
	if !ok {
		return stringify(v)
	}
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
