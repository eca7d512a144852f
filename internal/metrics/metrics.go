package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ExpenseMutationsTotal counts committed expense mutations by action (add, edit, delete).
	ExpenseMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expense_mutations_total",
			Help: "Total number of committed expense mutations by action",
		},
		[]string{"action"},
	)

	// LoginAttemptsTotal counts logins by result (success, failure).
	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	// SessionsSweptTotal counts expired sessions removed by the sweeper.
	SessionsSweptTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_swept_total",
			Help: "Total number of expired sessions deleted",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ExpenseMutationsTotal, LoginAttemptsTotal, SessionsSweptTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncExpenseMutation counts one committed mutation for action.
func IncExpenseMutation(action string) {
	ExpenseMutationsTotal.WithLabelValues(action).Inc()
}

// IncLogin counts one login attempt; ok selects the result label.
func IncLogin(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// AddSessionsSwept adds n to the swept sessions counter.
func AddSessionsSwept(n int64) {
	if n > 0 {
		SessionsSweptTotal.Add(float64(n))
	}
}
