package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for tree construction and chart queries.
type Metrics struct {
	// Startup/reload phase durations: parse, build, render
	BuildDuration *prometheus.HistogramVec

	// Size of the published snapshot
	Individuals prometheus.Gauge
	Families    prometheus.Gauge
	IndexPages  prometheus.Gauge

	// Snapshot reloads by result
	Reloads *prometheus.CounterVec

	// People per rendered chart by kind (pedigree, descendants)
	ChartSize *prometheus.HistogramVec

	// Search result sizes and cache outcomes
	SearchResults prometheus.Histogram
	SearchCache   *prometheus.CounterVec
}

// New registers the genealogy metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BuildDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gimm_tree_build_phase_duration_seconds",
			Help:    "Duration of snapshot construction phases",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"phase"}),

		Individuals: f.NewGauge(prometheus.GaugeOpts{
			Name: "gimm_tree_individuals",
			Help: "Individuals in the published snapshot",
		}),
		Families: f.NewGauge(prometheus.GaugeOpts{
			Name: "gimm_tree_families",
			Help: "Consolidated families in the published snapshot",
		}),
		IndexPages: f.NewGauge(prometheus.GaugeOpts{
			Name: "gimm_tree_index_pages",
			Help: "Visible index pages in the published snapshot",
		}),

		Reloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gimm_tree_reloads_total",
			Help: "Snapshot reload attempts by result",
		}, []string{"result"}), // result: "published", "failed"

		ChartSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gimm_chart_individuals",
			Help:    "Individuals per rendered chart",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"chart"}),

		SearchResults: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gimm_search_results",
			Help:    "Matches per search before truncation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9),
		}),
		SearchCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gimm_search_cache_total",
			Help: "Search cache lookups by outcome",
		}, []string{"outcome"}), // outcome: "hit", "miss", "error"
	}
}

// ObservePhase records the duration of a construction phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m != nil {
		m.BuildDuration.WithLabelValues(phase).Observe(d.Seconds())
	}
}

// SetSnapshotSize records the size of a newly published snapshot.
func (m *Metrics) SetSnapshotSize(individuals, families, pages int) {
	if m != nil {
		m.Individuals.Set(float64(individuals))
		m.Families.Set(float64(families))
		m.IndexPages.Set(float64(pages))
	}
}

// IncrementReload records a reload outcome.
func (m *Metrics) IncrementReload(result string) {
	if m != nil {
		m.Reloads.WithLabelValues(result).Inc()
	}
}

// ObserveChart records how many people a chart contained.
func (m *Metrics) ObserveChart(chart string, people int) {
	if m != nil {
		m.ChartSize.WithLabelValues(chart).Observe(float64(people))
	}
}

// ObserveSearch records the number of matches of a search.
func (m *Metrics) ObserveSearch(matches int) {
	if m != nil {
		m.SearchResults.Observe(float64(matches))
	}
}

// IncrementSearchCache records a cache lookup outcome.
func (m *Metrics) IncrementSearchCache(outcome string) {
	if m != nil {
		m.SearchCache.WithLabelValues(outcome).Inc()
	}
}
