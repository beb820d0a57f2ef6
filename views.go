package flakecache

import (
	"reflect"

	"github.com/flakecache/flakecache/types"
)

// This file defines the derived views: canned Find predicates over entry
// state and over the concrete type of the stored value. Each returns the
// same identifier-to-value mapping Find does, or ErrNoMatches.

// Stale returns every entry past its max age.
func (c *FlakeCache) Stale() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool { return e.IsStale() })
}

// Fresh returns every entry still within its max age. Stale and Fresh
// partition the full entry set between them.
func (c *FlakeCache) Fresh() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool { return !e.IsStale() })
}

// Mutable returns every entry classified as mutable. These are the entries
// whose values must carry Update and Serialize capabilities to be updated.
func (c *FlakeCache) Mutable() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool { return e.Kind == types.Mutable })
}

// Immutable returns every entry classified as immutable.
func (c *FlakeCache) Immutable() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool { return e.Kind == types.Immutable })
}

// Strings returns every entry whose stored value is a string.
func (c *FlakeCache) Strings() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool {
		_, ok := e.Value.(string)
		return ok
	})
}

// Integers returns every entry whose stored value is an integer of any
// width, signed or unsigned.
func (c *FlakeCache) Integers() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool {
		switch valueKind(e.Value) {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		default:
			return false
		}
	})
}

// Floats returns every entry whose stored value is a float32 or float64.
func (c *FlakeCache) Floats() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool {
		k := valueKind(e.Value)
		return k == reflect.Float32 || k == reflect.Float64
	})
}

// Booleans returns every entry whose stored value is a bool.
func (c *FlakeCache) Booleans() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool {
		_, ok := e.Value.(bool)
		return ok
	})
}

// ComplexNumbers returns every entry whose stored value is a complex64 or
// complex128.
func (c *FlakeCache) ComplexNumbers() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool {
		k := valueKind(e.Value)
		return k == reflect.Complex64 || k == reflect.Complex128
	})
}

// Tuples returns every entry whose stored value is a fixed-size array.
func (c *FlakeCache) Tuples() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool {
		return valueKind(e.Value) == reflect.Array
	})
}

// FrozenSets returns every entry whose stored value is a types.FrozenSet.
func (c *FlakeCache) FrozenSets() (map[uint64]any, error) {
	return c.Find(func(e *types.Entry) bool {
		_, ok := e.Value.(types.FrozenSet)
		return ok
	})
}

// valueKind is a nil-safe reflect.Kind lookup.
func valueKind(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.ValueOf(v).Kind()
}
