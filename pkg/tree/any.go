package tree

import (
	"fmt"
	"reflect"
	"sort"
)

// Any adapts an arbitrary Go value into a [Node].
//
// Containers become internal nodes, scalars become leaves:
//
//   - maps: keyed children, sorted by formatted key for determinism
//   - slices: positional children
//   - arrays: fixed tuples
//   - structs: keyed children from exported fields, in declaration order
//   - pointers and interfaces: transparently dereferenced (nil is a leaf)
//
// Children are materialized lazily on each Children call, so adapting a
// value never walks it; only rendering does. Cyclic values therefore
// recurse without bound unless the renderer's depth limit stops them.
func Any(v any) Node {
	return anyNode{v: v}
}

type anyNode struct {
	v any
}

func (n anyNode) Value() any { return n.v }

// Label summarizes container nodes so their text does not repeat the
// children below them.
func (n anyNode) Label() string {
	rv := deref(reflect.ValueOf(n.v))
	if !rv.IsValid() {
		return "<nil>"
	}
	switch rv.Kind() {
	case reflect.Map:
		return fmt.Sprintf("map[%d]", rv.Len())
	case reflect.Slice:
		return fmt.Sprintf("list[%d]", rv.Len())
	case reflect.Array:
		return fmt.Sprintf("tuple[%d]", rv.Len())
	case reflect.Struct:
		return rv.Type().Name()
	}
	return fmt.Sprintf("%v", n.v)
}

func (n anyNode) Children() List {
	rv := deref(reflect.ValueOf(n.v))
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Map:
		return mapChildren(rv)
	case reflect.Slice:
		out := make(Slice, rv.Len())
		for i := range out {
			out[i] = Any(rv.Index(i).Interface())
		}
		return out
	case reflect.Array:
		out := make(Tuple, rv.Len())
		for i := range out {
			out[i] = Any(rv.Index(i).Interface())
		}
		return out
	case reflect.Struct:
		return structChildren(rv)
	}
	return nil
}

// mapChildren sorts map entries by formatted key, matching [NewMap]. Map
// iteration order is randomized in Go; diagrams must not be.
func mapChildren(rv reflect.Value) List {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprintf("%v", keys[i].Interface()) < fmt.Sprintf("%v", keys[j].Interface())
	})

	out := make(Map, 0, len(keys))
	for _, k := range keys {
		out = append(out, Pair{
			Key:  k.Interface(),
			Node: Any(rv.MapIndex(k).Interface()),
		})
	}
	return out
}

func structChildren(rv reflect.Value) List {
	t := rv.Type()
	var out Pairs
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		out = append(out, Pair{
			Key:  f.Name,
			Node: Any(rv.Field(i).Interface()),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func deref(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}
