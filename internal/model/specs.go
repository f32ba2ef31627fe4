package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// Specifications is the open key/value bag attached to parts. Values come
// from catalog JSON and may be numbers, strings, or anything else; callers
// must go through the typed accessors and treat absence as unknown.
type Specifications map[string]any

// specAliases maps a canonical key to the legacy/ingestion keys that mean
// the same thing. Lookups try the requested key first, then its aliases.
var specAliases = map[string][]string{
	"bore_diameter": {"bore_in", "bore_mm"},
	"bore_in":       {"bore_diameter"},
	"pitch":         {"chain_size"},
	"chain_size":    {"pitch"},
}

func (s Specifications) lookup(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	if v, ok := s[key]; ok {
		return v, true
	}
	for _, alias := range specAliases[key] {
		if v, ok := s[alias]; ok {
			return v, true
		}
	}
	return nil, false
}

// Number returns the first numeric value found under any of the candidate
// keys. JSON numbers decode as float64, but seeds and older records store
// some numerics as strings or ints, so those are coerced too. NaN and
// infinities are treated as absent.
func (s Specifications) Number(keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := s.lookup(key)
		if !ok {
			continue
		}
		if n, ok := coerceNumber(v); ok {
			return n, true
		}
	}
	return 0, false
}

// Text returns the first non-empty string value found under any of the
// candidate keys.
func (s Specifications) Text(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := s.lookup(key)
		if !ok {
			continue
		}
		if str, ok := v.(string); ok && str != "" {
			return str, true
		}
	}
	return "", false
}

func coerceNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
