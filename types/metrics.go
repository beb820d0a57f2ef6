package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The cache will call
these methods whenever something happens.
*/
type Metrics interface {

	// Hit is called when Get finds an entry for the requested identifier.
	Hit()

	// Miss is called when Get finds no entry for the requested identifier.
	Miss()

	// Add is called when a new entry is inserted.
	Add()

	// Update is called when an entry update completes successfully.
	Update()

	// Rollback is called when a mutable update failed and the entry was
	// restored from its snapshot.
	Rollback()

	// Remove is called when an entry is explicitly removed.
	Remove()

	// Find is called when a predicate scan returns at least one match.
	Find()

	// NoMatches is called when a predicate scan returns nothing.
	NoMatches()

	// StaleRead is called when Get returns an entry that is past its max age.
	StaleRead()

	// Resize is called with the entry count after any operation that changes it.
	Resize(n int)
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

We don't want to force every user of the cache to implement metrics. If
someone does not care about them, the cache should still work without nil
checks everywhere, so this default simply ignores all metric events.
*/
type NoopMetrics struct{}

// All methods below intentionally do nothing.
// This satisfies the Metrics interface without side effects.

func (NoopMetrics) Hit()       {}
func (NoopMetrics) Miss()      {}
func (NoopMetrics) Add()       {}
func (NoopMetrics) Update()    {}
func (NoopMetrics) Rollback()  {}
func (NoopMetrics) Remove()    {}
func (NoopMetrics) Find()      {}
func (NoopMetrics) NoMatches() {}
func (NoopMetrics) StaleRead() {}
func (NoopMetrics) Resize(int) {}
