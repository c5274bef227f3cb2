package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "depsnap"

// Metrics holds the prometheus collectors fed by the pipeline hooks.
type Metrics struct {
	FilterCalls    *prometheus.CounterVec
	Commits        *prometheus.CounterVec
	CommitDuration prometheus.Histogram
	WorldSize      *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FilterCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "filter_calls_total",
				Help:      "Total number of filter invocations",
			},
			[]string{"filter", "operation", "changed", "result"},
		),
		Commits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commits_total",
				Help:      "Total number of snapshot updates",
			},
			[]string{"result"},
		),
		CommitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "commit_duration_seconds",
				Help:      "Duration of snapshot updates",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		WorldSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "world_dependencies",
				Help:      "Dependencies in the latest committed snapshot",
			},
			[]string{"project", "target_framework"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.FilterCalls, m.Commits, m.CommitDuration, m.WorldSize)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFilter: func(_ context.Context, e *domain.FilterEvent) {
			m.FilterCalls.WithLabelValues(e.Filter, string(e.Operation), strconv.FormatBool(e.Changed), result(e.Err)).Inc()
		},
		OnCommit: func(_ context.Context, e *domain.CommitEvent) {
			m.Commits.WithLabelValues(result(e.Err)).Inc()
			m.CommitDuration.Observe(e.Duration.Seconds())
			if e.Err == nil {
				m.WorldSize.WithLabelValues(e.ProjectPath, e.TargetFramework).Set(float64(e.WorldSize))
			}
		},
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
