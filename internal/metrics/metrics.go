// Package metrics exposes Prometheus collectors describing generation runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spade_generations_total",
		Help: "Site generations by result",
	}, []string{"result"})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spade_generation_duration_seconds",
		Help:    "Time spent generating the site",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	contentItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "spade_content_items",
		Help: "Content items indexed by the last generation, by kind",
	}, []string{"kind"})

	graphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spade_graph_edges",
		Help: "Edges in the last exported link graph",
	})

	unresolvedLinks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spade_unresolved_links",
		Help: "Wikilinks that did not resolve in the last generation",
	})
)

// Run summarises a finished generation.
type Run struct {
	Duration   time.Duration
	Articles   int
	Assets     int
	Edges      int
	Unresolved int
	Err        error
}

// Observe records r.
func Observe(r Run) {
	generationDuration.Observe(r.Duration.Seconds())
	if r.Err != nil {
		generationsTotal.WithLabelValues("error").Inc()
		return
	}
	generationsTotal.WithLabelValues("ok").Inc()
	contentItems.WithLabelValues("article").Set(float64(r.Articles))
	contentItems.WithLabelValues("asset").Set(float64(r.Assets))
	graphEdges.Set(float64(r.Edges))
	unresolvedLinks.Set(float64(r.Unresolved))
}
