package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// KeySeparator delimits fingerprint segments.
const KeySeparator = "::"

// Fingerprint builds a cache fingerprint from a resource name, an operation,
// and the operation's parameters. Equal inputs always produce byte-identical
// fingerprints, regardless of map iteration order, so the same query from two
// call sites lands on the same cache entry.
//
// The resource name is always the first segment, which is what makes
// prefix-based invalidation work: every fingerprint under resource "shelves"
// starts with "shelves::".
func Fingerprint(resource, op string, params ...any) string {
	parts := make([]string, 0, 2+len(params))
	parts = append(parts, resource, op)
	for _, p := range params {
		parts = append(parts, serializeValue(p))
	}
	return strings.Join(parts, KeySeparator)
}

// Prefix returns the invalidation prefix covering every operation on the
// resource.
func Prefix(resource string) string {
	return resource + KeySeparator
}

// serializeValue renders a single parameter deterministically.
func serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	rt := reflect.TypeOf(v)

	switch rt.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return "nil"
		}
		return serializeValue(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}
		return serializeList("slice", rv)

	case reflect.Array:
		return serializeList("array", rv)

	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		return serializeMap(rv)

	case reflect.Struct:
		return serializeStruct(rv, rt)

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return fmt.Sprintf("%v", v)
	}

	return jsonFallback(v)
}

func serializeList(kind string, rv reflect.Value) string {
	length := rv.Len()
	parts := make([]string, length)
	for i := 0; i < length; i++ {
		parts[i] = serializeValue(rv.Index(i).Interface())
	}
	return fmt.Sprintf("%s[%d]:{%s}", kind, length, strings.Join(parts, ","))
}

// serializeMap renders key-value pairs in sorted key order so that two maps
// with the same content always fingerprint identically.
func serializeMap(rv reflect.Value) string {
	keys := rv.MapKeys()

	type pair struct {
		key   string
		value string
	}
	pairs := make([]pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, pair{
			key:   serializeValue(k.Interface()),
			value: serializeValue(rv.MapIndex(k).Interface()),
		})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	rendered := make([]string, len(pairs))
	for i, p := range pairs {
		rendered[i] = fmt.Sprintf("%s=%s", p.key, p.value)
	}
	return fmt.Sprintf("map[%d]:{%s}", len(rendered), strings.Join(rendered, ","))
}

// serializeStruct renders exported fields as name:value pairs in declaration
// order. Declaration order is stable for a given type, which is all we need.
func serializeStruct(rv reflect.Value, rt reflect.Type) string {
	parts := make([]string, 0, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if !fv.CanInterface() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%s", field.Name, serializeValue(fv.Interface())))
	}
	return fmt.Sprintf("struct:{%s}", strings.Join(parts, ","))
}

func jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%s", reflect.TypeOf(v).String())
	}
	return fmt.Sprintf("json:%s", data)
}
