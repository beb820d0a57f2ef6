package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	flakecache "github.com/flakecache/flakecache"
	"github.com/flakecache/flakecache/flake"
)

// ================= BENCHMARK =================

func main() {
	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")

	const (
		preloadKeys = 100000
		goroutines  = 200
		opsPerG     = 5000
	)

	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Preload Keys :", preloadKeys)
	fmt.Println("Goroutines   :", goroutines)
	fmt.Println("Ops / G      :", opsPerG)

	node, err := flake.NewNode(1)
	if err != nil {
		panic(err)
	}

	cache := flakecache.New()
	now := time.Now().UnixMilli()

	// ---------------- Preload ----------------
	ids := make([]uint64, preloadKeys)
	for i := range ids {
		id := node.Next()
		ids[i] = id.ID()
		if _, err := cache.Add(id, i, now, 0, nil); err != nil {
			panic(err)
		}
	}

	// ---------------- Read Load ----------------
	var hits atomic.Int64
	start := time.Now()

	wg := sync.WaitGroup{}
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < opsPerG; i++ {
				id := ids[(g*opsPerG+i)%len(ids)]
				if _, err := cache.Get(id); err == nil {
					hits.Add(1)
				}
			}
		}(g)
	}
	wg.Wait()

	elapsed := time.Since(start)
	total := int64(goroutines * opsPerG)

	fmt.Println("\nRESULTS")
	fmt.Println("---------------------------------")
	fmt.Println("Total Gets   :", total)
	fmt.Println("Hits         :", hits.Load())
	fmt.Println("Elapsed      :", elapsed)
	fmt.Printf("Throughput   : %.0f ops/sec\n", float64(total)/elapsed.Seconds())

	// ---------------- Scan Load ----------------
	start = time.Now()
	fresh, err := cache.Fresh()
	if err != nil {
		panic(err)
	}
	fmt.Println("\nFull Fresh scan over", len(fresh), "entries took", time.Since(start))
}
