// Package metrics defines the console's Prometheus metrics. It is the single
// source of truth for metric names, labels and help strings.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	obserrors "github.com/Rushil0704/auth-client-1/internal/observability/errors"
)

const namespace = "console"

// Result constants for metric labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultStale   = "stale"
	ResultNoop    = "noop"
)

// Metrics bundles every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// APIRequests counts remote API calls.
	// Labels: endpoint (e.g. "GET /users"), outcome ("success" or an error class).
	APIRequests *prometheus.CounterVec

	// APIDuration measures remote API latency by endpoint.
	APIDuration *prometheus.HistogramVec

	// ListFetches counts list controller fetches.
	// Labels: resource ("users", "categories"), result ("success", "error", "stale").
	ListFetches *prometheus.CounterVec

	// Logins counts login attempts by result.
	Logins *prometheus.CounterVec

	// Uploads counts finished upload flows by result.
	Uploads *prometheus.CounterVec

	// ThemeToggles counts theme switches by the theme switched to.
	ThemeToggles *prometheus.CounterVec

	// HTTPRequests measures console request latency.
	// Labels: method, status.
	HTTPRequests *prometheus.HistogramVec

	// LiveConnections tracks open live-table websockets.
	LiveConnections prometheus.Gauge
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of remote API requests, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		APIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Latency of remote API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		ListFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_fetches_total",
			Help:      "Total number of list controller fetches, by resource and result.",
		}, []string{"resource", "result"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of login attempts, by result.",
		}, []string{"result"}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Total number of image uploads, by result.",
		}, []string{"result"}),
		ThemeToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theme_toggles_total",
			Help:      "Total number of theme switches, by resulting theme.",
		}, []string{"theme"}),
		HTTPRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of console HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
		LiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_connections",
			Help:      "Number of open live table websocket connections.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.APIRequests,
			m.APIDuration,
			m.ListFetches,
			m.Logins,
			m.Uploads,
			m.ThemeToggles,
			m.HTTPRequests,
			m.LiveConnections,
		)
	}
	return m
}

// APICall captures one remote API request for metric emission.
type APICall struct {
	Endpoint string
	Duration time.Duration
	Err      error
}

// ObserveAPICall records the call count and latency.
func (m *Metrics) ObserveAPICall(in APICall) {
	if m == nil {
		return
	}
	outcome := ResultSuccess
	if in.Err != nil {
		outcome = obserrors.Classify(in.Err)
	}
	m.APIRequests.WithLabelValues(in.Endpoint, outcome).Inc()
	m.APIDuration.WithLabelValues(in.Endpoint).Observe(in.Duration.Seconds())
}

// ObserveListFetch records a list fetch result.
func (m *Metrics) ObserveListFetch(resource, result string) {
	if m == nil {
		return
	}
	m.ListFetches.WithLabelValues(resource, result).Inc()
}

// ObserveLogin records a login attempt.
func (m *Metrics) ObserveLogin(err error) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(resultOf(err)).Inc()
}

// ObserveUpload records a finished upload flow.
func (m *Metrics) ObserveUpload(err error) {
	if m == nil {
		return
	}
	m.Uploads.WithLabelValues(resultOf(err)).Inc()
}

// ObserveThemeToggle records a theme switch.
func (m *Metrics) ObserveThemeToggle(theme string) {
	if m == nil {
		return
	}
	m.ThemeToggles.WithLabelValues(theme).Inc()
}

// ObserveHTTPRequest records console request latency.
func (m *Metrics) ObserveHTTPRequest(method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, status).Observe(d.Seconds())
}

// LiveConnected adjusts the open websocket gauge by delta.
func (m *Metrics) LiveConnected(delta float64) {
	if m == nil {
		return
	}
	m.LiveConnections.Add(delta)
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
