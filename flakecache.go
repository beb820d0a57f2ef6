package flakecache

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/flakecache/flakecache/api"
	"github.com/flakecache/flakecache/refresh"
	"github.com/flakecache/flakecache/types"
)

// FlakeCache is the one implementation of the public contract.
var _ api.Cache = (*FlakeCache)(nil)

/*
FlakeCache is the main cache implementation: a mapping from snowflake
identifier to Entry.

The cache stores what callers hand it. It never fetches data itself; the
client fetches externally, declares when the data was obtained (FetchedAt)
and how long it may live (MaxAge), and the cache tracks freshness and
mediates updates through the entry's rollback protocol.

One RWMutex guards the whole map. Find has to observe a consistent snapshot
of every entry during its scan, so per-entry or sharded locking would not
give the derived views (Stale, Fresh, and friends) a coherent answer.
*/
type FlakeCache struct {
	mu      sync.RWMutex
	entries map[uint64]*types.Entry

	// clock is shared with every entry so staleness is driven by one time
	// source, injectable for tests.
	clock types.Clock

	// metrics receives lifecycle events. Never nil; defaults to NoopMetrics.
	metrics types.Metrics

	// hook, when set, is notified on stale reads so the client can schedule
	// a re-fetch. The read path never waits on it.
	hook refresh.Hook
}

// New creates an empty cache. With no options it uses the wall clock and
// discards all metric events.
func New(opts ...Option) *FlakeCache {
	c := &FlakeCache{
		entries: make(map[uint64]*types.Entry),
		clock:   types.WallClock{},
		metrics: types.NoopMetrics{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

/*
Add constructs an entry from a minted identifier and inserts it.

The caller supplies everything: the identifier handle, the already-fetched
value, the fetch timestamp, the max age policy, and (for mutable values) the
factory that rebuilds the declared type from its serialized form.

Fails with ErrDuplicateKey if an entry with that identifier already exists;
the existing entry is untouched. On success the raw stored value comes back,
not the entry wrapper.
*/
func (c *FlakeCache) Add(id types.Identifier, value any, fetchedAt, maxAge int64, factory types.Factory) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := id.ID()
	if _, exists := c.entries[key]; exists {
		return nil, fmt.Errorf("%w (id %d)", types.ErrDuplicateKey, key)
	}

	ent := types.NewEntry(id, value, fetchedAt, maxAge, factory, c.clock)
	c.entries[key] = ent

	c.metrics.Add()
	c.metrics.Resize(len(c.entries))
	return ent.Value, nil
}

/*
Get returns the raw value stored under the identifier.

Callers never see the entry wrapper; they asked the cache to store a value
and that is what they get back. If the entry is past its max age the value
is still returned (expired entries are not auto-evicted), but the stale-read
hook fires so the client can re-fetch.

Fails with ErrNotFound when no entry exists for the identifier.
*/
func (c *FlakeCache) Get(id uint64) (any, error) {
	// Value and staleness are both read under the lock: Update writes them
	// under the write lock, and nothing of the entry may be touched after
	// RUnlock. The hook fires outside the critical section.
	c.mu.RLock()
	ent, ok := c.entries[id]
	var (
		value any
		stale bool
	)
	if ok {
		value = ent.Value
		stale = ent.IsStale()
	}
	c.mu.RUnlock()

	if !ok {
		c.metrics.Miss()
		return nil, fmt.Errorf("%w (id %d)", types.ErrNotFound, id)
	}

	c.metrics.Hit()
	if stale {
		c.metrics.StaleRead()
		if c.hook != nil {
			c.hook.OnStale(id, ent)
		}
	}
	return value, nil
}

/*
Update delegates to the addressed entry's update protocol.

The entry decides between plain replacement (immutable values, or scalar new
data) and the protected in-place path (snapshot, mutate, roll back on
failure). Whatever the entry's own Update method returns is passed through
here, success value or failure, unchanged.

Fails with ErrNotFound when no entry exists for the identifier.
*/
func (c *FlakeCache) Update(id uint64, data any, fetchedAt int64) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w (id %d)", types.ErrNotFound, id)
	}

	res, err := ent.Update(fetchedAt, data)
	if err != nil {
		if rolledBack(err) {
			c.metrics.Rollback()
		}
		return nil, err
	}

	c.metrics.Update()
	return res, nil
}

// rolledBack reports whether an update error came from the stored value's
// own Update method, which is the only path where a snapshot was restored.
// Capability and factory failures happen before any mutation.
func rolledBack(err error) bool {
	for _, sentinel := range []error{
		types.ErrNoUpdateMethod,
		types.ErrNotUpdatable,
		types.ErrUnserializable,
		types.ErrNoFactory,
	} {
		if errors.Is(err, sentinel) {
			return false
		}
	}
	return true
}

/*
Remove deletes the entry for the given identifier.

The argument may be a minted Identifier handle, a raw uint64, a signed
integer, or the decimal string rendering. Anything else fails with
ErrBadIdentifier. Removing an absent identifier fails with ErrNotFound.
*/
func (c *FlakeCache) Remove(ident any) error {
	id, err := resolveIdentifier(ident)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; !ok {
		return fmt.Errorf("%w (id %d)", types.ErrNotFound, id)
	}
	delete(c.entries, id)

	c.metrics.Remove()
	c.metrics.Resize(len(c.entries))
	return nil
}

// resolveIdentifier maps the accepted identifier representations onto the
// raw 64-bit key.
func resolveIdentifier(ident any) (uint64, error) {
	switch v := ident.(type) {
	case types.Identifier:
		return v.ID(), nil
	case uint64:
		return v, nil
	case int64:
		return uint64(v), nil
	case int:
		return uint64(v), nil
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w (unparsable string %q)", types.ErrBadIdentifier, v)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("%w (received %T)", types.ErrBadIdentifier, ident)
	}
}

/*
Find scans every entry and collects the ones the predicate accepts.

The predicate receives the Entry, not the raw value, so it can inspect
timing and kind metadata as well. The result maps identifier to raw value
for every match.

Fails with ErrNoMatches when nothing matched. This is deliberate: absence of
results is signaled as an error, not an empty map, so view consumers
distinguish "nothing there" through the error kind alone.
*/
func (c *FlakeCache) Find(pred func(*types.Entry) bool) (map[uint64]any, error) {
	c.mu.RLock()
	res := make(map[uint64]any)
	for id, ent := range c.entries {
		if pred(ent) {
			res[id] = ent.Value
		}
	}
	c.mu.RUnlock()

	if len(res) == 0 {
		c.metrics.NoMatches()
		return nil, types.ErrNoMatches
	}

	c.metrics.Find()
	return res, nil
}

// Clear removes every entry.
func (c *FlakeCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[uint64]*types.Entry)
	c.mu.Unlock()

	c.metrics.Resize(0)
}

// Length returns the number of entries currently stored.
func (c *FlakeCache) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns every stored identifier. Order is unspecified.
func (c *FlakeCache) Keys() []uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]uint64, 0, len(c.entries))
	for id := range c.entries {
		keys = append(keys, id)
	}
	return keys
}

// Values returns every stored raw value. Order is unspecified.
func (c *FlakeCache) Values() []any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	vals := make([]any, 0, len(c.entries))
	for _, ent := range c.entries {
		vals = append(vals, ent.Value)
	}
	return vals
}

// Items returns the identifier to raw value mapping for every entry.
func (c *FlakeCache) Items() map[uint64]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make(map[uint64]any, len(c.entries))
	for id, ent := range c.entries {
		items[id] = ent.Value
	}
	return items
}
