// Package render formats harness results and daemon API payloads for
// terminal display.
package render

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Chroma configuration for dark-background terminals.
const (
	highlightLexer     = "json"
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// Beyond this nesting depth values are flattened to their string form.
// Guards the fallback walk against cyclic structures.
const maxDepth = 32

// Pretty returns v rendered as four-space-indented JSON with ANSI syntax
// highlighting. A string input is treated as the body to highlight and is
// never re-serialized. Values that encoding/json cannot handle fall back to
// their string representation, sub-value by sub-value. If highlighting
// fails the plain serialized text is returned.
func Pretty(v any) (string, error) {
	body, ok := v.(string)
	if !ok {
		data, err := json.MarshalIndent(jsonable(v, 0), "", "    ")
		if err != nil {
			return "", fmt.Errorf("serialize for display: %w", err)
		}
		body = string(data)
	}

	var highlighted strings.Builder
	if err := quick.Highlight(&highlighted, body, highlightLexer, highlightFormatter, highlightStyle); err != nil {
		return body, nil
	}
	return highlighted.String(), nil
}

// jsonable returns v unchanged when encoding/json accepts it, and otherwise
// rebuilds it from parts, replacing each unserializable leaf with its
// string representation.
func jsonable(v any, depth int) any {
	if v == nil {
		return nil
	}
	if depth >= maxDepth {
		return fmt.Sprint(v)
	}
	if _, err := json.Marshal(v); err == nil {
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return jsonable(rv.Elem().Interface(), depth+1)
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = jsonable(iter.Value().Interface(), depth+1)
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = jsonable(rv.Index(i).Interface(), depth+1)
		}
		return out
	case reflect.Struct:
		out := make(map[string]any, rv.NumField())
		rt := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag != "" {
				if tag == "-" {
					continue
				}
				name = tag
			}
			out[name] = jsonable(rv.Field(i).Interface(), depth+1)
		}
		return out
	default:
		// chan, func, complex, NaN floats and friends.
		return fmt.Sprint(v)
	}
}
