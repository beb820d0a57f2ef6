package refresh_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/flakecache/flakecache/refresh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalescerBurstNotifiesOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	co := refresh.NewCoalescer(func(id uint64) {
		calls.Add(1)
		<-release
	})

	// A burst of stale reads on the same identifier.
	for i := 0; i < 10; i++ {
		co.OnStale(42, nil)
	}

	// The first notification starts; everything else joins its flight.
	require.Eventually(t, func() bool { return calls.Load() == 1 },
		2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	close(release)
}

func TestCoalescerSeparateIdentifiersNotifySeparately(t *testing.T) {
	notified := make(chan uint64, 2)

	co := refresh.NewCoalescer(func(id uint64) {
		notified <- id
	})

	co.OnStale(1, nil)
	co.OnStale(2, nil)

	seen := map[uint64]bool{}
	for i := 0; i < 2; i++ {
		select {
		case id := <-notified:
			seen[id] = true
		case <-time.After(2 * time.Second):
			t.Fatal("notification never arrived")
		}
	}
	assert.True(t, seen[1])
	assert.True(t, seen[2])
}

func TestCoalescerNotifiesAgainAfterFlightCompletes(t *testing.T) {
	notified := make(chan uint64, 2)

	co := refresh.NewCoalescer(func(id uint64) {
		notified <- id
	})

	co.OnStale(7, nil)
	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("first notification never arrived")
	}

	// A later stale read is a new flight, not part of the old burst.
	co.OnStale(7, nil)
	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("second notification never arrived")
	}
}
