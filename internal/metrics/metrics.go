package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Business logic metrics
	userSignupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_signups_total",
			Help: "Total number of user signups",
		},
	)

	userLoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_logins_total",
			Help: "Total number of user logins",
		},
	)

	userLoginsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_logins_failed_total",
			Help: "Total number of failed login attempts",
		},
	)

	tokenRefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "token_refreshes_total",
			Help: "Total number of access token refreshes",
		},
	)

	// Dependency health metrics
	dependencyHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_health",
			Help: "Health status of dependencies (1 = healthy, 0 = unhealthy)",
		},
		[]string{"dependency"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordSignup increments the signup counter
func RecordSignup() {
	userSignupsTotal.Inc()
}

// RecordLogin increments the login counter
func RecordLogin() {
	userLoginsTotal.Inc()
}

// RecordLoginFailed increments the failed login counter
func RecordLoginFailed() {
	userLoginsFailed.Inc()
}

// RecordTokenRefresh increments the refresh counter
func RecordTokenRefresh() {
	tokenRefreshesTotal.Inc()
}

// SetDependencyHealth sets the health status of a dependency
func SetDependencyHealth(dependency string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	dependencyHealth.WithLabelValues(dependency).Set(value)
}

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}
