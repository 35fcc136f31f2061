package study

import "strings"

// Lookup walks the tree along a dot-separated path ("a.b.c") and returns the
// value found there. It returns ok=false the moment a key is missing or an
// intermediate value is not an object; a missing path is never an error.
// Callers apply their own defaults on absence, which is exactly what the
// typed helpers below do.
//
// An empty path is a programmer error and panics.
func (t *Tree) Lookup(path string) (any, bool) {
	if path == "" {
		panic("Tree.Lookup: empty path")
	}
	var cur any = t.Raw
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// StringAt returns the string at path, or def when the path is absent or the
// value is not a string.
func (t *Tree) StringAt(path, def string) string {
	if v, ok := t.Lookup(path); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// FloatAt returns the number at path as float64, or def when absent.
// Integral JSON numbers parse as int64 and are widened here.
func (t *Tree) FloatAt(path string, def float64) float64 {
	if v, ok := t.Lookup(path); ok {
		switch x := v.(type) {
		case float64:
			return x
		case int64:
			return float64(x)
		}
	}
	return def
}

// IntAt returns the number at path as int, or def when absent. Fractional
// values are truncated, matching JSON-number coercion elsewhere in this
// package.
func (t *Tree) IntAt(path string, def int) int {
	if v, ok := t.Lookup(path); ok {
		switch x := v.(type) {
		case int64:
			return int(x)
		case float64:
			return int(x)
		}
	}
	return def
}

// BoolAt returns the boolean at path, or def when absent.
func (t *Tree) BoolAt(path string, def bool) bool {
	if v, ok := t.Lookup(path); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// MapAt returns the object at path.
func (t *Tree) MapAt(path string) (map[string]any, bool) {
	if v, ok := t.Lookup(path); ok {
		if m, ok := v.(map[string]any); ok {
			return m, true
		}
	}
	return nil, false
}

// SliceAt returns the array at path.
func (t *Tree) SliceAt(path string) ([]any, bool) {
	if v, ok := t.Lookup(path); ok {
		if s, ok := v.([]any); ok {
			return s, true
		}
	}
	return nil, false
}

// StringsAt returns the array at path as []string. ok is false when the path
// is absent, not an array, or any element is not a string.
func (t *Tree) StringsAt(path string) ([]string, bool) {
	raw, ok := t.SliceAt(path)
	if !ok {
		return nil, false
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}
