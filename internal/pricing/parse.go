package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

var currencyChars = strings.NewReplacer("$", "", ",", "", "€", "", "£", "")

// ParsePrice normalizes a value of unknown shape into a decimal. Numbers pass
// through; strings are stripped of currency symbols, thousands separators and
// whitespace before parsing. Nil, empty and unparseable inputs report no
// value rather than an error; parsing never aborts a lookup.
func ParsePrice(v any) (float64, bool) {
	switch p := v.(type) {
	case nil:
		return 0, false
	case float64:
		return p, true
	case float32:
		return float64(p), true
	case int:
		return float64(p), true
	case int64:
		return float64(p), true
	case string:
		clean := strings.TrimSpace(currencyChars.Replace(p))
		if clean == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// parsePricePtr is ParsePrice with the optional-decimal shape used by
// SourceRecord fields.
func parsePricePtr(v any) *float64 {
	f, ok := ParsePrice(v)
	if !ok {
		return nil
	}
	return &f
}

var datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)

// ParseDate reduces a release-date value to its YYYY-MM-DD portion. Inputs
// already in that form pass through; ISO timestamps and space-separated
// datetimes are truncated; anything else is returned as-is.
func ParseDate(v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}
	switch {
	case strings.Contains(s, "T"):
		return strings.SplitN(s, "T", 2)[0]
	case strings.Contains(s, " "):
		return strings.SplitN(s, " ", 2)[0]
	case len(s) == 10 && strings.Count(s, "-") == 2:
		return s
	default:
		if m := datePrefix.FindString(s); m != "" {
			return m
		}
		return s
	}
}

// ParseCategory maps an upstream gender field to an inventory category.
func ParseCategory(v any) string {
	s, _ := v.(string)
	if s == "" {
		return "Men's"
	}
	g := strings.ToLower(s)
	switch {
	case strings.Contains(g, "women") || strings.Contains(g, "female"):
		return "Women's"
	case strings.Contains(g, "child") || strings.Contains(g, "kid") || strings.Contains(g, "youth"):
		return "Children's"
	default:
		return "Men's"
	}
}
