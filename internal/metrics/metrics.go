// Package metrics exposes moderation counters over Prometheus. The
// collector owns its registry so tests can construct as many as they like
// without duplicate-registration panics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tarekm/adsift/internal/logging"
	"github.com/tarekm/adsift/internal/moderation"
)

type Collector struct {
	registry          *prometheus.Registry
	decisions         *prometheus.CounterVec
	flags             *prometheus.CounterVec
	escalations       prometheus.Counter
	scoreDistribution prometheus.Histogram
	duration          prometheus.Histogram
	logger            logging.Logger
}

func NewCollector(logger logging.Logger) *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		decisions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "adsift_decisions_total",
			Help: "Moderation decisions by outcome",
		}, []string{"decision"}),
		flags: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "adsift_flags_total",
			Help: "Raised moderation flags by analyzer kind",
		}, []string{"kind"}),
		escalations: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "adsift_resubmission_escalations_total",
			Help: "Submissions escalated to review as near duplicates of rejected ads",
		}),
		scoreDistribution: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "adsift_score_distribution",
			Help:    "Distribution of moderation risk scores",
			Buckets: []float64{0, 0.2, 0.4, 0.6, 0.8, 1},
		}),
		duration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "adsift_moderation_duration_seconds",
			Help:    "Time taken to score one submission",
			Buckets: prometheus.DefBuckets,
		}),
		logger: logger,
	}
}

// RecordModeration observes one scored submission.
func (c *Collector) RecordModeration(res *moderation.Result, took time.Duration) {
	c.decisions.WithLabelValues(string(res.Decision)).Inc()
	c.scoreDistribution.Observe(res.Score)
	c.duration.Observe(took.Seconds())
	for _, f := range res.Flags {
		c.flags.WithLabelValues(string(f.Kind)).Inc()
	}
}

// RecordEscalation observes one resubmission escalation.
func (c *Collector) RecordEscalation() {
	c.escalations.Inc()
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
