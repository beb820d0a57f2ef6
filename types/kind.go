package types

import "reflect"

/*
Kind is the closed classification every cache entry receives at construction.

The cache treats values in exactly two ways:
- Immutable values are replaced wholesale on update. No capability on the
  value is ever invoked.
- Mutable values are updated in place through their own Update method, with
  a snapshot taken first so a failed update can be rolled back.

The classification is decided ONCE, from the concrete type of the initial
value, and never changes for the lifetime of the entry. This avoids repeated
runtime type inspection on every operation.
*/
type Kind string

const (
	// Immutable covers scalar value categories that are safe to copy by value:
	// booleans, all integer widths, floats, complex numbers, strings,
	// fixed-size arrays (the Go rendering of a tuple), and FrozenSet.
	Immutable Kind = "IMMUTABLE"

	// Mutable covers everything else: structs, pointers, slices, maps, and
	// any other composite or reference value. Mutable values must expose
	// Update and Serialize capabilities before the cache will touch them.
	Mutable Kind = "MUTABLE"
)

/*
KindOf classifies a value into one of the two kinds.

A nil value classifies as Mutable: it exposes no capabilities, so every
update or serialize attempt on it will surface the matching error instead of
silently replacing data the caller believed was protected.
*/
func KindOf(v any) Kind {
	if v == nil {
		return Mutable
	}

	// FrozenSet is a struct, but it is sealed at construction and exposes
	// no mutation surface, so it counts as a scalar category.
	if _, ok := v.(FrozenSet); ok {
		return Immutable
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String,
		reflect.Array:
		return Immutable
	default:
		return Mutable
	}
}
