package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	AuthLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"service", "result"},
	)

	SessionsIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_sessions_issued_total",
			Help: "Total number of sessions issued.",
		},
		[]string{"service", "result"},
	)

	AuditWriteFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Audit rows that could not be persisted (non-fatal).",
		},
		[]string{"service", "module"},
	)
)

func MustRegister(serviceName string) {
	HTTPRequestsTotal = HTTPRequestsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	HTTPRequestDurationSeconds = HTTPRequestDurationSeconds.MustCurryWith(prometheus.Labels{"service": serviceName}).(*prometheus.HistogramVec)
	AuthLoginsTotal = AuthLoginsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	SessionsIssuedTotal = SessionsIssuedTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	AuditWriteFailuresTotal = AuditWriteFailuresTotal.MustCurryWith(prometheus.Labels{"service": serviceName})

	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		AuthLoginsTotal,
		SessionsIssuedTotal,
		AuditWriteFailuresTotal,
	)
}
