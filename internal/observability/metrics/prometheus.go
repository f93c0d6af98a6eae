package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	durationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

	// DispatchesTotal counts dispatch requests accepted by the orchestrator,
	// by notification category.
	DispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_dispatches_total",
			Help: "Total number of notification dispatch requests, by category.",
		},
		[]string{"category"},
	)

	// ChannelAttempts counts per-channel send attempts.
	ChannelAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_channel_attempts_total",
			Help: "Total number of channel send attempts, by channel.",
		},
		[]string{"channel"},
	)

	// ChannelSuccesses counts per-channel sends that succeeded.
	ChannelSuccesses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_channel_successes_total",
			Help: "Total number of successful channel sends, by channel.",
		},
		[]string{"channel"},
	)

	// ChannelFailures counts per-channel sends that were attempted and failed.
	ChannelFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_channel_failures_total",
			Help: "Total number of failed channel sends, by channel.",
		},
		[]string{"channel"},
	)

	// ChannelSkips counts channels skipped for missing contact data or a
	// disabled sender.
	ChannelSkips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_channel_skips_total",
			Help: "Total number of channels skipped (missing contact field or disabled sender), by channel.",
		},
		[]string{"channel"},
	)

	// SendDuration measures the duration of individual channel send attempts.
	SendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notification_channel_send_duration_seconds",
			Help:    "Histogram of channel send duration in seconds, by channel and success status.",
			Buckets: durationBuckets,
		},
		[]string{"channel", "success"},
	)
)

// MetricsHandler returns the HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// ObserveSendDuration simplifies observing channel send duration.
func ObserveSendDuration(channel string, success bool, start time.Time) {
	successStr := "false"
	if success {
		successStr = "true"
	}
	SendDuration.WithLabelValues(channel, successStr).Observe(time.Since(start).Seconds())
}
