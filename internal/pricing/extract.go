package pricing

import "strings"

// Payload is the untyped tree a source adapter receives from its API client.
// Upstream schemas drift, so values stay untyped until they are projected
// into a SourceRecord; Payload never leaks past the adapter boundary.
type Payload map[string]any

// String returns the first non-empty string among the candidate keys.
func (p Payload) String(keys ...string) string {
	for _, k := range keys {
		if s, ok := p[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Price returns the first parseable price among the candidate keys.
func (p Payload) Price(keys ...string) *float64 {
	for _, k := range keys {
		if v, ok := p[k]; ok {
			if f := parsePricePtr(v); f != nil {
				return f
			}
		}
	}
	return nil
}

// Map returns the value at key as a nested Payload, or nil.
func (p Payload) Map(key string) Payload {
	if m, ok := p[key].(map[string]any); ok {
		return Payload(m)
	}
	return nil
}

// List returns the value at key as a list of nested Payloads. Non-object
// elements are skipped.
func (p Payload) List(key string) []Payload {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Payload, 0, len(raw))
	for _, e := range raw {
		if m, isMap := e.(map[string]any); isMap {
			out = append(out, Payload(m))
		}
	}
	return out
}

// imageQualityOrder is the preference order when an image field holds a
// nested object of variants.
var imageQualityOrder = []string{"original", "large", "medium", "small", "thumbnail"}

// defaultImageKeys are the candidate keys tried by ExtractImageURL when the
// caller does not supply its own ordering.
var defaultImageKeys = []string{
	"image_url", "imageUrl", "image", "thumbnail", "picture_url",
	"mainPictureUrl", "pictureUrl",
}

// ExtractImageURL pulls an image URL out of a variably-shaped payload. Each
// candidate key is tried in order; a nested object is searched by quality
// preference. Only absolute http(s) URLs are accepted. Returns "" when no
// candidate yields a valid value, never an error.
func ExtractImageURL(p Payload, keys ...string) string {
	if len(keys) == 0 {
		keys = defaultImageKeys
	}
	for _, k := range keys {
		v, ok := p[k]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case map[string]any:
			for _, quality := range imageQualityOrder {
				if u, isStr := val[quality].(string); isStr && isHTTPURL(u) {
					return u
				}
			}
		case string:
			if isHTTPURL(val) {
				return val
			}
		}
	}
	return ""
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
