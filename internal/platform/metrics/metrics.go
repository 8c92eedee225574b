// Package metrics holds the batch run collectors and the pushgateway hand-off.
// Batch jobs exit before any scraper could see them, so metrics are pushed once at the end
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Run is a per-process set of collectors on a private registry
type Run struct {
	Reg *prometheus.Registry

	ItemsTotal     *prometheus.CounterVec
	Candidates     prometheus.Gauge
	ActionDuration prometheus.Histogram
	LastRun        prometheus.Gauge
}

// NewRun registers the run collectors on a fresh registry
func NewRun() *Run {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Run{
		Reg: reg,
		ItemsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "remd_napr_items_total",
				Help: "Registration outcomes by status",
			},
			[]string{"status"},
		),
		Candidates: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "remd_napr_candidates",
				Help: "Distinct actors selected for the window",
			},
		),
		ActionDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "remd_napr_action_duration_seconds",
				Help:    "Duration of one registration action in seconds",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			},
		),
		LastRun: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "remd_napr_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
		),
	}
}

// Outcome records one finished item. Nil receiver is a no-op
func (r *Run) Outcome(status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.ItemsTotal.WithLabelValues(status).Inc()
	r.ActionDuration.Observe(elapsed.Seconds())
}

// Selected records the size of the work list. Nil receiver is a no-op
func (r *Run) Selected(n int) {
	if r == nil {
		return
	}
	r.Candidates.Set(float64(n))
}

// Finished stamps the last run gauge. Nil receiver is a no-op
func (r *Run) Finished(at time.Time) {
	if r == nil {
		return
	}
	r.LastRun.Set(float64(at.Unix()))
}

// Push sends the registry to a pushgateway under job, grouped by instance when set.
// Empty url disables pushing
func (r *Run) Push(ctx context.Context, url, job, instance string) error {
	if r == nil || url == "" {
		return nil
	}
	p := push.New(url, job).Gatherer(r.Reg)
	if instance != "" {
		p = p.Grouping("instance", instance)
	}
	if err := p.PushContext(ctx); err != nil {
		return fmt.Errorf("metrics: push to %s: %w", url, err)
	}
	return nil
}
