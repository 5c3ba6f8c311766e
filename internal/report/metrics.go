// Optional Prometheus instrumentation for the "batch" command: a registry
// recording a histogram of total elapsed times and a counter of runs,
// formatted to the text exposition format and written to any io.Writer
// (the "batch" command writes it to the file named by --metrics). No HTTP
// listener is started — the core's "no real networking"
// non-goal extends to this reporting layer, which only exercises the
// client's registry/histogram/gather API, not its server.
package report

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/expfmt"
)

// MetricsRecorder accumulates run statistics into a private Prometheus
// registry for later exposition.
type MetricsRecorder struct {
	registry *prometheus.Registry
	runs     prometheus.Counter
	elapsed  prometheus.Histogram
}

// NewMetricsRecorder creates a recorder with a fresh registry, so repeated
// batch commands in the same process don't accumulate metrics across runs.
func NewMetricsRecorder() *MetricsRecorder {
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pageflight_estimate_runs_total",
		Help: "Number of page-load estimates computed.",
	})
	elapsed := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pageflight_estimate_elapsed_ms",
		Help:    "Distribution of total estimated page-load elapsed time, in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(100, 2, 12),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(runs, elapsed)

	return &MetricsRecorder{registry: registry, runs: runs, elapsed: elapsed}
}

// Observe records one completed estimate.
func (m *MetricsRecorder) Observe(totalElapsedTime float64) {
	m.runs.Inc()
	m.elapsed.Observe(totalElapsedTime)
}

// WriteExposition formats the recorder's registry to the Prometheus text
// exposition format and writes it to w.
func (m *MetricsRecorder) WriteExposition(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	encoder := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return err
		}
	}
	return nil
}
