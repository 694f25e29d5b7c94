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

	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokens_issued_total",
			Help: "Total number of tokens issued or refreshed.",
		},
		[]string{"flow", "result"},
	)

	DevicesCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devices_created_total",
			Help: "Total number of device registrations.",
		},
		[]string{"result"},
	)

	FootprintsRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footprints_recorded_total",
			Help: "Total number of footprints recorded.",
		},
		[]string{"result"},
	)
)

func MustRegister(serviceName string) {
	HTTPRequestsTotal = HTTPRequestsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	HTTPRequestDurationSeconds = HTTPRequestDurationSeconds.MustCurryWith(prometheus.Labels{"service": serviceName}).(*prometheus.HistogramVec)

	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		TokensIssuedTotal,
		DevicesCreatedTotal,
		FootprintsRecordedTotal,
	)
}
