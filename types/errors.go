package types

import "errors"

// This file defines the error kinds the cache can surface.
//
// Every failure is synchronous and leaves state unchanged, with one
// exception: a failed mutable update rolls the value back to its snapshot
// before re-surfacing the original error. The cache never retries and never
// recovers silently.
//
// All sentinels are matched with errors.Is; operations wrap them with the
// identifier or type involved.
var (
	// ErrDuplicateKey is returned by Add when an entry with the provided
	// identifier already exists. The existing entry is left untouched.
	ErrDuplicateKey = errors.New("entry cannot be added: an entry with the provided ID already exists in the cache")

	// ErrNotFound is returned by Get, Update, and Remove when no entry
	// exists for the provided identifier.
	ErrNotFound = errors.New("entry cannot be found: no entry with the provided ID could be found in the cache")

	// ErrNoMatches is returned by Find and every derived view when the
	// predicate matched zero entries. Absence of results is an error here,
	// not an empty map.
	ErrNoMatches = errors.New("find unsuccessful: no entries found matching the requested conditions")

	// ErrBadIdentifier is returned by Remove when the argument is neither a
	// raw identifier nor an Identifier handle.
	ErrBadIdentifier = errors.New("entry cannot be removed: unsupported identifier type")

	// ErrNoUpdateMethod is returned when a mutable value has no Update
	// method at all.
	ErrNoUpdateMethod = errors.New("entry cannot be updated: no available UPDATE method found")

	// ErrNotUpdatable is returned when a mutable value has something named
	// Update, but not with the shape the cache can call.
	ErrNotUpdatable = errors.New("entry cannot be updated: available UPDATE method is not callable")

	// ErrUnserializable is returned when a mutable value exposes no usable
	// Serialize method.
	ErrUnserializable = errors.New("entry cannot be serialized: no usable SERIALIZE method found")

	// ErrNoFactory is returned when a mutable update would need a rollback
	// snapshot but the entry was added without a reconstruction factory.
	// The check happens before any mutation is attempted.
	ErrNoFactory = errors.New("entry cannot be updated: no factory available to rebuild the stored value")
)
