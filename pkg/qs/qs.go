// Package qs encodes and decodes the flat key/value query strings used both
// for embed URLs and for events posted back by an embedded player.
package qs

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/exp/slices"
)

const (
	DefaultSeparator = "&"
	listSuffix       = "[]"
	listSeparator    = ","
)

type Options struct {
	// Separator joins encoded pairs. Empty means DefaultSeparator.
	Separator string
	// Raw disables percent-encoding of keys and values.
	Raw bool
}

// Encode is EncodeWith using the default options.
func Encode(fields map[string]any) string {
	return EncodeWith(fields, Options{})
}

// EncodeWith encodes every non-nil scalar of fields as key=value. Pairs are
// sorted on their encoded form so the output does not depend on map order.
// Sequence values must be flattened beforehand, see Flatten.
func EncodeWith(fields map[string]any, opts Options) string {
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	escape := EscapeComponent
	if opts.Raw {
		escape = func(s string) string { return s }
	}

	pairs := make([]string, 0, len(fields))
	for key, value := range omitNil(fields) {
		pairs = append(pairs, escape(key)+"="+escape(stringify(value)))
	}
	slices.Sort(pairs)

	return strings.Join(pairs, sep)
}

// Flatten returns a copy of fields where sequence values are joined with ",".
func Flatten(fields map[string]any) map[string]any {
	flat := make(map[string]any, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case []string:
			flat[key] = strings.Join(v, listSeparator)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, stringify(item))
			}
			flat[key] = strings.Join(parts, listSeparator)
		default:
			flat[key] = value
		}
	}

	return flat
}

// Decode parses s into Values. Keys ending in "[]" accumulate into lists,
// any other key keeps its last value. Pairs with an empty key are skipped.
func Decode(s string) Values {
	values := make(Values)
	for _, pair := range strings.Split(s, "&") {
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		if rawKey == "" {
			continue
		}

		key := unescape(rawKey)
		value := ""
		if rawValue != "" {
			value = unescape(strings.ReplaceAll(rawValue, "+", "%20"))
		}

		if name, ok := strings.CutSuffix(key, listSuffix); ok {
			current := values[name]
			values[name] = Value{list: append(current.list, value), isList: true}
			continue
		}

		values[key] = Value{str: value}
	}

	return values
}

// EscapeComponent percent-encodes s the way browsers encode a URI component:
// everything except ASCII letters, digits and -_.!~*'() is escaped.
func EscapeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}

	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func unescape(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}

	return decoded
}

func stringify(value any) string {
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}

	return fmt.Sprint(value)
}

// omitNil drops nil values and nil pointers and dereferences the rest.
func omitNil(fields map[string]any) map[string]any {
	omitted := make(map[string]any, len(fields))
	for key, value := range fields {
		if value == nil {
			continue
		}

		v := reflect.ValueOf(value)
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				continue
			}
			omitted[key] = v.Elem().Interface()
		} else {
			omitted[key] = value
		}
	}

	return omitted
}
