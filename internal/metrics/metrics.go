package metrics

import (
	"math"

	"tensorbench/internal/benchmark"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the gauges exported for a benchmark run.
type Metrics struct {
	registry *prometheus.Registry

	MeanMicroseconds   *prometheus.GaugeVec
	MedianMicroseconds *prometheus.GaugeVec
	StdDevMicroseconds *prometheus.GaugeVec
	Iterations         *prometheus.GaugeVec
	SpeedupRatio       *prometheus.GaugeVec
}

// NewMetrics creates the benchmark gauges on a private registry.
func NewMetrics() *Metrics {
	labels := []string{"operation", "source"}
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.MeanMicroseconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tensorbench",
			Name:      "mean_microseconds",
			Help:      "Mean duration of one benchmark iteration in microseconds",
		},
		labels,
	)

	m.MedianMicroseconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tensorbench",
			Name:      "median_microseconds",
			Help:      "Median duration of one benchmark iteration in microseconds",
		},
		labels,
	)

	m.StdDevMicroseconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tensorbench",
			Name:      "stddev_microseconds",
			Help:      "Sample standard deviation of benchmark iterations in microseconds",
		},
		labels,
	)

	m.Iterations = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tensorbench",
			Name:      "iterations",
			Help:      "Number of timed iterations",
		},
		labels,
	)

	m.SpeedupRatio = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tensorbench",
			Name:      "speedup_ratio",
			Help:      "Other mean divided by reference mean (above 1 means the reference is faster)",
		},
		[]string{"operation", "reference", "other"},
	)

	m.registry.MustRegister(
		m.MeanMicroseconds,
		m.MedianMicroseconds,
		m.StdDevMicroseconds,
		m.Iterations,
		m.SpeedupRatio,
	)

	return m
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records the statistics of every record. A later record with the
// same operation and source overwrites an earlier one.
func (m *Metrics) Observe(records []benchmark.Record) {
	for _, r := range records {
		m.MeanMicroseconds.WithLabelValues(r.Operation, r.Source).Set(r.MeanUs)
		m.MedianMicroseconds.WithLabelValues(r.Operation, r.Source).Set(r.MedianUs)
		m.StdDevMicroseconds.WithLabelValues(r.Operation, r.Source).Set(r.StdDevUs)
		m.Iterations.WithLabelValues(r.Operation, r.Source).Set(float64(r.Iterations))
	}
}

// ObserveSpeedups records finite speedup ratios.
func (m *Metrics) ObserveSpeedups(referenceName, otherName string, speedups []benchmark.Speedup) {
	for _, s := range speedups {
		if math.IsInf(s.Ratio, 0) || math.IsNaN(s.Ratio) {
			continue
		}
		m.SpeedupRatio.WithLabelValues(s.Operation, referenceName, otherName).Set(s.Ratio)
	}
}

// WriteTextfile writes the metrics in the Prometheus text format, suitable
// for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
