package types

import (
	"fmt"
	"reflect"
)

/*
Updatable is the update capability a mutable value must expose.

The cache never interprets the stored value. When an update arrives, the
value itself is responsible for applying the new data, validating it, and
returning whatever result its owner wants back. Any error it returns is
propagated to the caller unchanged, after the entry has been rolled back.
*/
type Updatable interface {
	Update(data any) (any, error)
}

/*
Serializable is the serialize capability a mutable value must expose.

Serialize returns the plain data needed to reconstruct the value through its
Factory. The cache uses this pair for rollback snapshots: rebuilding from
the value's own serialized form avoids guessing between shallow and deep
copies of a type the cache knows nothing about.
*/
type Serializable interface {
	Serialize() any
}

/*
Factory rebuilds a value of the entry's declared type from its own
serialized form. It is the Go rendering of "the declared type accepts its
own serialized output as a single constructor argument".

A factory is required for any mutable value that should survive a failed
update; without one there is nothing to roll back to.
*/
type Factory func(data any) any

/*
Entry is the cache's internal record: one stored value together with its
identity, timing, and kind classification.

ID and Kind never change for the lifetime of the entry. FetchedAt only
advances on successful updates. Value is exclusively owned by the entry;
callers read it through the container's Get, and every mutation must go
through Update so the rollback guarantee holds.
*/
type Entry struct {

	// ID is the permanent 64-bit identifier assigned at construction.
	ID uint64

	// IDString is the decimal rendering of ID, captured at construction.
	IDString string

	// CachedAt records when the cache first stored this entry, in Unix
	// milliseconds.
	CachedAt int64

	// FetchedAt records when the underlying data was last obtained or
	// validated by the caller. The cache never infers this; the caller
	// supplies it at Add and on every successful update.
	FetchedAt int64

	// MaxAge is the allowed age of the entry in milliseconds, measured
	// against FetchedAt. Any non-positive value means the entry never
	// expires; negative values are normalized to "unset" rather than
	// making the entry permanently stale.
	MaxAge int64

	// Kind is the fixed Immutable/Mutable classification, decided once from
	// the concrete type of the initial value.
	Kind Kind

	// Value is the stored payload: a scalar for Immutable entries, a handle
	// to a mutable object otherwise.
	Value any

	// factory rebuilds the declared value type from its serialized form.
	// Only consulted on the protected mutable update path.
	factory Factory

	// clock is sampled fresh on every staleness check.
	clock Clock
}

/*
NewEntry constructs an entry from a minted identifier and a caller-fetched
value. Construction never fails: capability requirements on mutable values
are checked at the moment Update or Serialize is invoked, not here.

A nil clock falls back to the wall clock.
*/
func NewEntry(id Identifier, value any, fetchedAt, maxAge int64, factory Factory, clock Clock) *Entry {
	if clock == nil {
		clock = WallClock{}
	}

	return &Entry{
		ID:        id.ID(),
		IDString:  id.String(),
		CachedAt:  clock.NowMillis(),
		FetchedAt: fetchedAt,
		MaxAge:    maxAge,
		Kind:      KindOf(value),
		Value:     value,
		factory:   factory,
		clock:     clock,
	}
}

/*
IsStale reports whether the entry has outlived its max age.

An entry with a non-positive MaxAge never expires. Otherwise the entry is
stale once more than MaxAge milliseconds have passed since FetchedAt. The
clock is sampled fresh on every call: staleness is a live property, not a
cached one, and a stale entry stays in the cache until it is explicitly
removed or updated.
*/
func (e *Entry) IsStale() bool {
	if e.MaxAge <= 0 {
		return false
	}
	return e.clock.NowMillis()-e.FetchedAt > e.MaxAge
}

/*
Serialize returns the plain form of the stored value.

Immutable values are self-describing and come back unchanged. Mutable values
must expose a Serialize capability; when they do not, the call fails with
ErrUnserializable and nothing changes.
*/
func (e *Entry) Serialize() (any, error) {
	if e.Kind == Immutable {
		return e.Value, nil
	}

	s, ok := e.Value.(Serializable)
	if !ok {
		return nil, fmt.Errorf("%w (stored type %T)", ErrUnserializable, e.Value)
	}
	return s.Serialize(), nil
}

/*
Update replaces or mutates the stored value and advances FetchedAt.

Three paths, checked in order:

 1. The entry is Immutable, or the new data is itself an immutable scalar.
    Plain replacement. No capability on the old value is consulted, because
    there is nothing to roll back: the old value is simply discarded.

 2. The entry is Mutable and the new data is composite. The current value
    must expose an Update capability. A value with no Update method fails
    with ErrNoUpdateMethod; a value with something named Update that the
    cache cannot call fails with ErrNotUpdatable. Both are terminal and
    leave the entry untouched.

 3. The protected path. Before the risky in-place mutation, a rollback
    snapshot is rebuilt from the value's own serialized form via the entry's
    factory. Then value.Update(data) runs. On success FetchedAt advances and
    the method's result is returned. On failure the snapshot replaces the
    half-mutated value, FetchedAt stays, and the original error is passed
    through without interpretation.
*/
func (e *Entry) Update(fetchedAt int64, data any) (any, error) {
	if e.Kind == Immutable || KindOf(data) == Immutable {
		e.Value = data
		e.FetchedAt = fetchedAt
		return nil, nil
	}

	u, ok := e.Value.(Updatable)
	if !ok {
		return nil, updateCapabilityError(e.Value)
	}

	if e.factory == nil {
		return nil, fmt.Errorf("%w (stored type %T)", ErrNoFactory, e.Value)
	}

	// Snapshot first. If the value cannot serialize, the update never starts.
	plain, err := e.Serialize()
	if err != nil {
		return nil, err
	}
	snapshot := e.factory(plain)

	res, err := u.Update(data)
	if err != nil {
		// Discard the partially mutated object and keep the old FetchedAt.
		e.Value = snapshot
		return nil, err
	}

	e.FetchedAt = fetchedAt
	return res, nil
}

/*
updateCapabilityError distinguishes "no Update method at all" from "an
Update method exists but not with a callable shape". The distinction matters
to callers: the first usually means the wrong type was cached, the second a
mismatched method signature on the right type.
*/
func updateCapabilityError(v any) error {
	if v != nil {
		if m := reflect.ValueOf(v).MethodByName("Update"); m.IsValid() {
			return fmt.Errorf("%w (stored type %T)", ErrNotUpdatable, v)
		}
	}
	return fmt.Errorf("%w (stored type %T)", ErrNoUpdateMethod, v)
}
