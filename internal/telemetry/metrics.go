package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FramesCaptured counts management frames received from the capture backend
	FramesCaptured = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hsmap",
			Name:      "frames_captured_total",
			Help:      "Total number of beacon/probe-response frames captured",
		},
		[]string{"interface"},
	)

	// NetworksDiscovered counts distinct networks added to the registry
	NetworksDiscovered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hsmap",
			Name:      "networks_discovered_total",
			Help:      "Total number of distinct networks discovered",
		},
	)

	// DecodeErrors counts IE buffers rejected by the scanner
	DecodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hsmap",
			Name:      "decode_errors_total",
			Help:      "Total number of information-element buffers rejected",
		},
		[]string{"reason"},
	)

	// ANQPCompletions counts descriptors completed with ANQP data
	ANQPCompletions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hsmap",
			Name:      "anqp_completions_total",
			Help:      "Total number of networks completed with ANQP data",
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		// Register metrics, ignoring errors if already registered
		// This prevents panics when metrics are already in the registry
		prometheus.DefaultRegisterer.Register(FramesCaptured)
		prometheus.DefaultRegisterer.Register(NetworksDiscovered)
		prometheus.DefaultRegisterer.Register(DecodeErrors)
		prometheus.DefaultRegisterer.Register(ANQPCompletions)
	})
}
