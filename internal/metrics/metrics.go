// Package metrics records search outcomes as Prometheus metrics.
//
// Collectors live on a Recorder's own registry rather than the global one,
// so tests and the bench command can each start from zero.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/gridpath/search"
)

const namespace = "gridpath"

// Recorder holds the search collectors. It is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	// searches counts finished searches.
	// Labels: outcome (found, not_found, cancelled)
	searches *prometheus.CounterVec

	// expanded observes cells expanded per search.
	expanded prometheus.Histogram

	// pathLength observes the path length of found searches.
	pathLength prometheus.Histogram

	// duration observes wall-clock search time.
	// Labels: outcome
	duration *prometheus.HistogramVec

	// truncated counts searches stopped by the expansion budget.
	truncated prometheus.Counter
}

// NewRecorder creates the collectors and registers them on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "total",
			Help:      "Finished searches by outcome",
		}, []string{"outcome"}),
		expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "cells_expanded",
			Help:      "Cells expanded per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		pathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "path_length",
			Help:      "Path length (cells, start included) of found paths",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Search wall-clock time in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"outcome"}),
		truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "truncated_total",
			Help:      "Searches stopped by the expansion budget",
		}),
	}
	r.registry.MustRegister(r.searches, r.expanded, r.pathLength, r.duration, r.truncated)
	return r
}

// Observe records one search result.
func (r *Recorder) Observe(res search.Result) {
	outcome := res.Outcome.String()
	r.searches.WithLabelValues(outcome).Inc()
	r.expanded.Observe(float64(res.Expanded))
	r.duration.WithLabelValues(outcome).Observe(res.Elapsed.Seconds())
	if res.Found() {
		r.pathLength.Observe(float64(res.Length))
	}
	if res.Truncated {
		r.truncated.Inc()
	}
}

// Registry exposes the registry, e.g. for promhttp or testutil.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Searches returns the counter for one outcome label.
func (r *Recorder) Searches(o search.Outcome) prometheus.Counter {
	return r.searches.WithLabelValues(o.String())
}

// WriteText writes every collected metric in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
