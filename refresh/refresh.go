// This file defines the idea of a "stale-read hook".
// The cache never fetches data itself, so when a read returns an entry past
// its max age, the most it can do is tell somebody. The goal of the hook is:
// "let the client re-fetch, without slowing down reads"

package refresh

import (
	"strconv"

	"github.com/flakecache/flakecache/types"
	"golang.org/x/sync/singleflight"
)

/*
Hook is the interface for stale-read behavior.
If a hook is configured, it is called every time Get returns a stale entry.

This gives the client a chance to:
- Schedule a background re-fetch
- Log access patterns on expired data
- Decide to remove the entry

The cache itself does NOT care what the hook does. It calls OnStale and
moves on.
*/
type Hook interface {

	/*
		OnStale is called after a stale read. It MUST be fast and non
		blocking because it runs on the hot read path. Anything expensive
		belongs on a goroutine the hook owns.
	*/
	OnStale(id uint64, ent *types.Entry)
}

// Notify is the client callback a Coalescer invokes, once per burst of
// stale reads on the same identifier. The client typically re-fetches the
// data and pushes it back through the cache's Update.
type Notify func(id uint64)

/*
Coalescer is the stock Hook implementation.

A stale entry that is read often produces a thundering herd of identical
notifications. Coalescer runs the callback off the read path and uses
singleflight so that, while one notification for an identifier is still in
flight, every further stale read of that identifier joins it instead of
firing again.
*/
type Coalescer struct {
	notify Notify
	sf     singleflight.Group
}

// NewCoalescer wraps a client callback in burst deduplication.
func NewCoalescer(notify Notify) *Coalescer {
	return &Coalescer{notify: notify}
}

// OnStale schedules the callback for the identifier. Returns immediately;
// the callback runs on its own goroutine.
func (c *Coalescer) OnStale(id uint64, _ *types.Entry) {
	go func() {
		_, _, _ = c.sf.Do(strconv.FormatUint(id, 10), func() (any, error) {
			c.notify(id)
			return nil, nil
		})
	}()
}
