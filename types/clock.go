package types

import "time"

/*
Clock is the time source used for staleness checks.

Staleness is a live computed property: every IsStale call samples the clock
fresh and compares it against the entry's FetchedAt. Making the clock an
interface means tests can drive time forward deterministically instead of
sleeping through real TTL windows.
*/
type Clock interface {

	// NowMillis returns the current time in milliseconds since the Unix epoch.
	// All entry timestamps (CachedAt, FetchedAt, MaxAge) use this unit.
	NowMillis() int64
}

// WallClock reads the real system clock. This is the default used when no
// clock is injected.
type WallClock struct{}

// NowMillis returns the current wall-clock time in Unix milliseconds.
func (WallClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}
