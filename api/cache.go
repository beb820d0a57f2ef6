package api

import "github.com/flakecache/flakecache/types"

/*
Cache defines the PUBLIC API of the snowflake-keyed cache.
This is a contract that guarantees certain behaviors, without exposing internals.
Details like locking, metrics, the clock, and the stale-read hook are hidden
behind this interface.
*/
type Cache interface {

	/*
		Add constructs an entry and inserts it under the identifier.

		BEHAVIOR:
		---------
		- The caller supplies everything: the minted identifier handle, the
		  already-fetched value, the fetch timestamp (Unix ms), the max age
		  policy (ms, 0 = never expires), and the reconstruction factory for
		  mutable values.
		- The value's kind (immutable scalar vs mutable composite) is decided
		  once, here, from its concrete type.
		- Fails with types.ErrDuplicateKey if the identifier is taken; the
		  existing entry is untouched.
		- On success, returns the raw stored value, never the entry wrapper.
	*/
	Add(id types.Identifier, value any, fetchedAt, maxAge int64, factory types.Factory) (any, error)

	/*
		Get returns the raw value stored under the identifier.

		BEHAVIOR:
		---------
		- Fails with types.ErrNotFound when no entry exists.
		- Stale entries are NOT evicted; the value still comes back, and the
		  stale-read hook (if configured) fires so the client can re-fetch.

		IMPORTANT:
		----------
		Mutation of a returned mutable value outside Update is outside the
		cache's consistency guarantees.
	*/
	Get(id uint64) (any, error)

	/*
		Update pushes caller-fetched data into the addressed entry.

		BEHAVIOR:
		---------
		- Immutable entries (and scalar new data) are replaced wholesale.
		- Mutable entries go through the protected path: snapshot via the
		  value's own Serialize + factory, then value.Update(data), rollback
		  on failure. The value's result or error is propagated unchanged.
		- FetchedAt advances only on success.
		- Fails with types.ErrNotFound when no entry exists.
	*/
	Update(id uint64, data any, fetchedAt int64) (any, error)

	/*
		Remove deletes the entry for the identifier.

		Accepts a types.Identifier handle, a raw uint64, a signed integer, or
		the decimal string rendering. Fails with types.ErrBadIdentifier for
		anything else, and with types.ErrNotFound when the entry is absent.
	*/
	Remove(ident any) error

	/*
		Find scans all entries and returns identifier -> raw value for every
		entry the predicate accepts. The predicate sees the Entry, so it can
		inspect timing and kind metadata, not just the value.

		Fails with types.ErrNoMatches when nothing matched. An empty result
		is an error by contract, never an empty map.
	*/
	Find(pred func(*types.Entry) bool) (map[uint64]any, error)

	// Derived views built atop Find. Each returns the same mapping or fails
	// with types.ErrNoMatches.

	// Stale returns entries past their max age; Fresh returns the rest.
	// Together they partition the full entry set.
	Stale() (map[uint64]any, error)
	Fresh() (map[uint64]any, error)

	// Mutable and Immutable split the entries by their fixed kind.
	Mutable() (map[uint64]any, error)
	Immutable() (map[uint64]any, error)

	// Per-concrete-type views over the stored values.
	Strings() (map[uint64]any, error)
	Integers() (map[uint64]any, error)
	Floats() (map[uint64]any, error)
	Booleans() (map[uint64]any, error)
	ComplexNumbers() (map[uint64]any, error)
	Tuples() (map[uint64]any, error)
	FrozenSets() (map[uint64]any, error)

	// Structural passthroughs mirroring a standard associative container.
	Clear()
	Length() int
	Keys() []uint64
	Values() []any
	Items() map[uint64]any
}
