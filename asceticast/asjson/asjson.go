// Package asjson projects arbitrary Go values into a portable form made only
// of nil, booleans, numbers, strings, []any and *Object, suitable for JSON or
// YAML export.
//
// Values that know their own projection implement Portable. Slices, arrays
// and maps are converted element-wise; map keys that are not strings are
// converted too and rendered as text. Map keys are sorted, since Go maps carry
// no order of their own.
package asjson

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Portable is implemented by values providing their own portable projection.
type Portable interface {
	AsJSON() any
}

// AsJSON converts v into its portable form. Nil pointers project to nil
// whatever their type.
func AsJSON(v any) any {
	if isNilPointer(v) {
		return nil
	}
	switch t := v.(type) {
	case nil:
		return nil
	case Portable:
		return t.AsJSON()
	case *Object:
		return t
	case string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return t
	case []byte:
		return t
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = AsJSON(e)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, AsJSON(t[k]))
		}
		return obj
	case encoding.TextMarshaler:
		if text, err := t.MarshalText(); err == nil {
			return string(text)
		}
	}
	return reflected(v)
}

// Key renders k as an object key.
func Key(k any) string {
	switch t := AsJSON(k).(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		return fmt.Sprint(t)
	}
}

func reflected(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		return convertSeq(rv)
	case reflect.Array:
		return convertSeq(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		return convertMap(rv)
	case reflect.Struct:
		return v
	}
	// named scalar types such as enums render through their String method
	if s, ok := v.(fmt.Stringer); ok && rv.Kind() != reflect.Pointer {
		return s.String()
	}
	return v
}

func convertSeq(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = AsJSON(rv.Index(i).Interface())
	}
	return out
}

func convertMap(rv reflect.Value) *Object {
	type entry struct {
		key   string
		value any
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{
			key:   Key(iter.Key().Interface()),
			value: AsJSON(iter.Value().Interface()),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	obj := NewObject()
	for _, e := range entries {
		obj.Set(e.key, e.value)
	}
	return obj
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
