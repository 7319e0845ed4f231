package models

import (
	"fmt"
	"strings"
)

// Record is one item of a tracked list, e.g. a single officer or filing entry,
// exactly as decoded from the registry's JSON. Its schema is open: only the
// field selected by a KeyFunc is relied upon for identity.
type Record map[string]any

// Lookup walks a dot-separated path ("links.self") through nested objects.
func (r Record) Lookup(path string) (any, bool) {
	if r == nil {
		return nil, false
	}
	var current any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// String returns the value at path rendered as a string, or "" when the path
// is missing or null.
func (r Record) String(path string) string {
	v, ok := r.Lookup(path)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Record:
		return map[string]any(t), true
	default:
		return nil, false
	}
}

// KeyFunc extracts the identity key of a record. It must be pure. Keys are
// compared for equality only and never used for ordering.
type KeyFunc func(Record) string

// FieldKey returns a KeyFunc reading the string value at path.
func FieldKey(path string) KeyFunc {
	return func(r Record) string {
		return r.String(path)
	}
}
