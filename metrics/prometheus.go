// Package metrics provides the prometheus-backed implementation of
// types.Metrics. Everything here is counters plus one size gauge; the cache
// calls the event methods and this package does nothing but increment.
package metrics

import (
	"github.com/flakecache/flakecache/types"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "flakecache"
	subsystem = "cache"
)

// Prometheus implements types.Metrics on top of prometheus counters.
type Prometheus struct {
	hits       prometheus.Counter
	misses     prometheus.Counter
	adds       prometheus.Counter
	updates    prometheus.Counter
	rollbacks  prometheus.Counter
	removes    prometheus.Counter
	finds      prometheus.Counter
	noMatches  prometheus.Counter
	staleReads prometheus.Counter

	size prometheus.Gauge
}

// NewPrometheus creates the metric set and registers it with the given
// registerer. The instance label distinguishes multiple caches sharing one
// registry.
func NewPrometheus(reg prometheus.Registerer, instance string) (*Prometheus, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        name,
			ConstLabels: prometheus.Labels{"instance": instance},
			Help:        help,
		})
	}

	m := &Prometheus{
		hits:       counter("hits_total", "Total number of reads that found an entry"),
		misses:     counter("misses_total", "Total number of reads that found no entry"),
		adds:       counter("adds_total", "Total number of entries inserted"),
		updates:    counter("updates_total", "Total number of successful entry updates"),
		rollbacks:  counter("rollbacks_total", "Total number of failed mutable updates rolled back"),
		removes:    counter("removes_total", "Total number of entries explicitly removed"),
		finds:      counter("finds_total", "Total number of predicate scans with at least one match"),
		noMatches:  counter("no_matches_total", "Total number of predicate scans that matched nothing"),
		staleReads: counter("stale_reads_total", "Total number of reads that returned an entry past its max age"),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "entries",
			ConstLabels: prometheus.Labels{"instance": instance},
			Help:        "Current number of entries in the cache",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.hits, m.misses, m.adds, m.updates, m.rollbacks,
		m.removes, m.finds, m.noMatches, m.staleReads, m.size,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

var _ types.Metrics = (*Prometheus)(nil)

func (m *Prometheus) Hit()       { m.hits.Inc() }
func (m *Prometheus) Miss()      { m.misses.Inc() }
func (m *Prometheus) Add()       { m.adds.Inc() }
func (m *Prometheus) Update()    { m.updates.Inc() }
func (m *Prometheus) Rollback()  { m.rollbacks.Inc() }
func (m *Prometheus) Remove()    { m.removes.Inc() }
func (m *Prometheus) Find()      { m.finds.Inc() }
func (m *Prometheus) NoMatches() { m.noMatches.Inc() }
func (m *Prometheus) StaleRead() { m.staleReads.Inc() }

func (m *Prometheus) Resize(n int) { m.size.Set(float64(n)) }
