package blocks

import "github.com/patchgraph/corepatch/ir"

// paramNumber returns params[key]'s numeric value, or fallback if the key
// is absent.
func paramNumber(params map[string]ir.Value, key string, fallback float64) float64 {
	v, ok := params[key]
	if !ok {
		return fallback
	}

	return v.AsNumber()
}

// paramString returns params[key]'s string value, or fallback if the key
// is absent.
func paramString(params map[string]ir.Value, key, fallback string) string {
	v, ok := params[key]
	if !ok {
		return fallback
	}

	return v.Str
}
