package main

import (
	"errors"
	"fmt"
	"time"

	flakecache "github.com/flakecache/flakecache"
	"github.com/flakecache/flakecache/flake"
	"github.com/flakecache/flakecache/metrics"
	"github.com/flakecache/flakecache/refresh"
	"github.com/flakecache/flakecache/types"
	"github.com/prometheus/client_golang/prometheus"
)

// ================= MUTABLE VALUE =================
//
// counter is the kind of value the cache treats as mutable: it carries the
// Update/Serialize pair, and its factory rebuilds it from serialized form.

type counter struct {
	count int
}

// increment is the update payload for counter. A bare int would be treated
// as scalar data and replace the stored value wholesale; a composite delta
// routes through the counter's own Update method instead.
type increment struct {
	By int
}

func newCounter(data any) any {
	n, _ := data.(int)
	return &counter{count: n}
}

func (c *counter) Update(data any) (any, error) {
	inc, ok := data.(increment)
	if !ok {
		return nil, fmt.Errorf("counter update wants increment, got %T", data)
	}
	if c.count+inc.By < 0 {
		// mutate first, then fail, so the demo shows a real rollback
		c.count = -1
		return nil, errors.New("counter cannot go negative")
	}
	c.count += inc.By
	return c.count, nil
}

func (c *counter) Serialize() any {
	return c.count
}

// ================= MAIN =================

func main() {
	fmt.Println("\n==================== SYSTEM BOOT ====================")

	// ---------------- Identifier Source ----------------
	node, err := flake.NewNode(1)
	if err != nil {
		panic(err)
	}
	fmt.Println("ID SOURCE : snowflake node 1")

	// ---------------- Metrics ----------------
	registry := prometheus.NewRegistry()
	m, err := metrics.NewPrometheus(registry, "demo")
	if err != nil {
		panic(err)
	}

	// ---------------- Stale Hook ----------------
	staleSeen := make(chan uint64, 8)
	hook := refresh.NewCoalescer(func(id uint64) {
		staleSeen <- id
	})

	// ---------------- Cache ----------------
	cache := flakecache.New(
		flakecache.WithMetrics(m),
		flakecache.WithStaleHook(hook),
	)

	now := time.Now().UnixMilli()

	// ====================================================
	fmt.Println("\n==================== 1) ADD + GET ====================")

	greetingID := node.Next()
	stored, _ := cache.Add(greetingID, "hello", now, 0, nil)
	fmt.Println("CACHE  → ADD", greetingID.String(), "=", stored)

	v, _ := cache.Get(greetingID.ID())
	fmt.Println("CACHE  → GET", greetingID.String(), "=", v)

	// ====================================================
	fmt.Println("\n==================== 2) DUPLICATE KEY ====================")

	_, err = cache.Add(greetingID, "hello again", now, 0, nil)
	fmt.Println("CACHE  → ADD duplicate =", err)

	// ====================================================
	fmt.Println("\n==================== 3) MUTABLE UPDATE ====================")

	counterID := node.Next()
	_, _ = cache.Add(counterID, &counter{count: 0}, now, 5000, newCounter)

	res, _ := cache.Update(counterID.ID(), increment{By: 5}, now)
	fmt.Println("CACHE  → UPDATE counter +5 =", res)

	// ====================================================
	fmt.Println("\n==================== 4) ROLLBACK ====================")

	_, err = cache.Update(counterID.ID(), increment{By: -100}, now)
	fmt.Println("CACHE  → UPDATE counter -100 =", err)

	v, _ = cache.Get(counterID.ID())
	fmt.Println("CACHE  → counter after rollback =", v.(*counter).count)

	// ====================================================
	fmt.Println("\n==================== 5) STALENESS ====================")

	// An entry fetched 6 seconds ago with a 5 second max age is stale.
	staleID := node.Next()
	_, _ = cache.Add(staleID, "yesterday's news", now-6000, 5000, nil)

	v, _ = cache.Get(staleID.ID())
	fmt.Println("CACHE  → GET stale entry =", v)
	fmt.Println("HOOK   → stale read coalesced for id", <-staleSeen)

	stale, _ := cache.Stale()
	fresh, _ := cache.Fresh()
	fmt.Println("CACHE  → stale:", len(stale), "fresh:", len(fresh))

	// ====================================================
	fmt.Println("\n==================== 6) VIEWS ====================")

	tupleID := node.Next()
	_, _ = cache.Add(tupleID, [2]int{3, 4}, now, 0, nil)

	setID := node.Next()
	_, _ = cache.Add(setID, types.NewFrozenSet("red", "green"), now, 0, nil)

	strs, _ := cache.Strings()
	tuples, _ := cache.Tuples()
	mutables, _ := cache.Mutable()
	fmt.Println("CACHE  → strings:", len(strs), "tuples:", len(tuples), "mutable:", len(mutables))

	// ====================================================
	fmt.Println("\n==================== 7) REMOVE ====================")

	_ = cache.Remove(tupleID)                // by handle
	_ = cache.Remove(setID.String())         // by decimal string
	err = cache.Remove(3.14)                 // unsupported
	fmt.Println("CACHE  → REMOVE float =", err)
	fmt.Println("CACHE  → LENGTH =", cache.Length())

	// ====================================================
	fmt.Println("\n==================== METRICS ====================")

	families, _ := registry.Gather()
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			val := metric.GetCounter().GetValue() + metric.GetGauge().GetValue()
			fmt.Printf("%-40s : %.0f\n", fam.GetName(), val)
		}
	}

	fmt.Println("\n==================== SHUTDOWN ====================")
	cache.Clear()
	fmt.Println("SYSTEM → cache cleared")
}
