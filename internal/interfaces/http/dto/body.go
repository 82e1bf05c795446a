package dto

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Body is a leniently parsed JSON object. Anything that is not a JSON
// object, malformed input included, parses as an empty Body.
type Body map[string]any

// ParseBody reads r into a Body. Numbers are kept exact.
func ParseBody(r io.Reader) Body {
	if r == nil {
		return Body{}
	}
	raw, err := io.ReadAll(r)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return Body{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil || out == nil {
		return Body{}
	}
	return Body(out)
}

// Has reports whether key is present, even with a null value
func (b Body) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// String returns the value as trimmed text. Missing keys, null and values
// without a text form yield "".
func (b Body) String(key string) string {
	v, ok := b[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// RawString is String without trimming, for values compared byte for byte
func (b Body) RawString(key string) string {
	v, ok := b[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// StringOr returns String(key), or def when the key is missing or null
func (b Body) StringOr(key, def string) string {
	if v, ok := b[key]; !ok || v == nil {
		return def
	}
	return b.String(key)
}

// OptionalString returns nil for a missing key, else a pointer to String(key)
func (b Body) OptionalString(key string) *string {
	if !b.Has(key) {
		return nil
	}
	s := b.String(key)
	return &s
}

// Decimal returns the value as a number. Nil means missing, null or not a
// finite number. Numeric strings are accepted.
func (b Body) Decimal(key string) *decimal.Decimal {
	v, ok := b[key]
	if !ok {
		return nil
	}
	return toDecimal(v)
}

// DecimalOr behaves like Decimal but returns def for a missing or null key
func (b Body) DecimalOr(key string, def decimal.Decimal) *decimal.Decimal {
	if v, ok := b[key]; !ok || v == nil {
		return &def
	}
	return b.Decimal(key)
}

// Bool returns the value as a boolean, or def for a missing or null key
func (b Body) Bool(key string, def bool) bool {
	v, ok := b[key]
	if !ok || v == nil {
		return def
	}
	out, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return out
}

// OptionalBool returns nil for a missing key
func (b Body) OptionalBool(key string) *bool {
	if !b.Has(key) {
		return nil
	}
	out := b.Bool(key, false)
	return &out
}

// Int returns the value as an int, or def when it cannot be converted
func (b Body) Int(key string, def int) int {
	v, ok := b[key]
	if !ok || v == nil {
		return def
	}
	out, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return out
}

// Strings returns every element of an array as text. A non-array value
// yields an empty list.
func (b Body) Strings(key string) []string {
	arr, ok := b[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if v == nil {
			continue
		}
		if s, err := cast.ToStringE(v); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Objects returns the object elements of an array. Other elements become
// empty bodies so that callers still see them.
func (b Body) Objects(key string) []Body {
	arr, ok := b[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Body, len(arr))
	for i, v := range arr {
		if m, ok := v.(map[string]any); ok {
			out[i] = Body(m)
		} else {
			out[i] = Body{}
		}
	}
	return out
}

func toDecimal(v any) *decimal.Decimal {
	var raw string
	switch n := v.(type) {
	case json.Number:
		raw = n.String()
	case string:
		raw = strings.TrimSpace(n)
	default:
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}
