package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/obsnight/transitplan/core/metrics"
)

// PromRecorder exposes planning runs as Prometheus metrics.
type PromRecorder struct {
	runs       prometheus.Counter
	scheduled  prometheus.Gauge
	rejections *prometheus.CounterVec
	elapsed    prometheus.Histogram
}

// NewPromRecorder registers run metrics on the default registerer.
func NewPromRecorder() (*PromRecorder, error) {
	return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromRecorderWithRegistry registers metrics on the provided
// registerer. A nil registerer defaults to the global one.
func NewPromRecorderWithRegistry(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transitplan_runs_total",
		Help: "Total number of planning runs",
	})
	scheduled := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transitplan_scheduled_targets",
		Help: "Number of targets in the last optimized schedule",
	})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transitplan_rejections_total",
		Help: "Cut-list entries by rejection cause",
	}, []string{"cause"})
	elapsed := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "transitplan_run_seconds",
		Help:    "Wall-clock duration of a planning run",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(scheduled); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			scheduled = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(rejections); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			rejections = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(elapsed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			elapsed = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	return &PromRecorder{runs: runs, scheduled: scheduled, rejections: rejections, elapsed: elapsed}, nil
}

// RecordRun implements coremetrics.RunRecorder.
func (r *PromRecorder) RecordRun(res coremetrics.RunResult) error {
	r.runs.Inc()
	r.scheduled.Set(float64(res.Scheduled))
	for cause, n := range res.Rejections {
		r.rejections.WithLabelValues(cause).Add(float64(n))
	}
	r.elapsed.Observe(res.Elapsed.Seconds())
	return nil
}
