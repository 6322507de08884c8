package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the alert watcher.
type Metrics struct {
	Polls           prometheus.Counter
	PollFailures    prometheus.Counter
	AlertsFetched   prometheus.Counter
	AlertsPublished prometheus.Counter
	PublishFailures prometheus.Counter

	SeenCacheEntries prometheus.Gauge
	WatcherReady     prometheus.Gauge

	// Outbound api.weather.gov request metrics.
	APIRequests        *prometheus.CounterVec   // labels: code, method
	APIRequestDuration *prometheus.HistogramVec // labels: method
}

// NewMetrics creates and registers all watcher metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alertwatch",
			Name:      "polls_total",
			Help:      "Total alert feed polls attempted.",
		}),
		PollFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alertwatch",
			Name:      "poll_failures_total",
			Help:      "Total alert feed polls that ended in an error.",
		}),
		AlertsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alertwatch",
			Name:      "alerts_fetched_total",
			Help:      "Total alerts returned by the feed, including ones already seen.",
		}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alertwatch",
			Name:      "alerts_published_total",
			Help:      "Total new alerts published to Kafka.",
		}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alertwatch",
			Name:      "publish_failures_total",
			Help:      "Total failed publish attempts.",
		}),
		SeenCacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "alertwatch",
			Name:      "seen_cache_entries",
			Help:      "Number of alert IDs currently held in the dedup cache.",
		}),
		WatcherReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "alertwatch",
			Name:      "watcher_ready",
			Help:      "1 when the watcher has a recent successful poll, 0 otherwise.",
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alertwatch",
			Name:      "api_requests_total",
			Help:      "Requests to api.weather.gov by status code and method.",
		}, []string{"code", "method"}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "alertwatch",
			Name:      "api_request_duration_seconds",
			Help:      "api.weather.gov request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
	}

	prometheus.MustRegister(
		m.Polls,
		m.PollFailures,
		m.AlertsFetched,
		m.AlertsPublished,
		m.PublishFailures,
		m.SeenCacheEntries,
		m.WatcherReady,
		m.APIRequests,
		m.APIRequestDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Polls:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "alertwatch", Name: "polls_total"}),
		PollFailures:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "alertwatch", Name: "poll_failures_total"}),
		AlertsFetched:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "alertwatch", Name: "alerts_fetched_total"}),
		AlertsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "alertwatch", Name: "alerts_published_total"}),
		PublishFailures:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "alertwatch", Name: "publish_failures_total"}),
		SeenCacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "alertwatch", Name: "seen_cache_entries"}),
		WatcherReady:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "alertwatch", Name: "watcher_ready"}),
		APIRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "alertwatch", Name: "api_requests_total"}, []string{"code", "method"}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "alertwatch",
			Name:      "api_request_duration_seconds",
		}, []string{"method"}),
	}
}

// InstrumentHTTPClient wraps the client's transport so every outbound request
// is counted and timed. The client is returned for convenient chaining.
func (m *Metrics) InstrumentHTTPClient(c *http.Client) *http.Client {
	base := c.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.Transport = promhttp.InstrumentRoundTripperCounter(m.APIRequests,
		promhttp.InstrumentRoundTripperDuration(m.APIRequestDuration, base))
	return c
}
