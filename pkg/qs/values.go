package qs

import "golang.org/x/exp/slices"

// Value is either a scalar string or a list accumulated from "key[]" pairs.
type Value struct {
	str    string
	list   []string
	isList bool
}

func (v Value) String() string { return v.str }

func (v Value) IsList() bool { return v.isList }

// Values is the decoded form of a query string.
type Values map[string]Value

// Get returns the scalar value for key, or "" when the key is absent or
// holds a list.
func (vs Values) Get(key string) string {
	return vs[key].str
}

func (vs Values) Has(key string) bool {
	_, ok := vs[key]
	return ok
}

// List returns the list stored under key. A scalar is returned as a single
// element list, an absent key as nil.
func (vs Values) List(key string) []string {
	v, ok := vs[key]
	if !ok {
		return nil
	}

	if v.isList {
		return slices.Clone(v.list)
	}

	return []string{v.str}
}

// Map converts vs into a plain map with string or []string values.
func (vs Values) Map() map[string]any {
	m := make(map[string]any, len(vs))
	for key, v := range vs {
		if v.isList {
			m[key] = slices.Clone(v.list)
		} else {
			m[key] = v.str
		}
	}

	return m
}
