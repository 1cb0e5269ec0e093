package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	InsightViews = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "insight_views_total",
			Help: "Total insight detail views recorded",
		},
	)

	UploadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "Total successful image uploads",
		},
	)
	UploadsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "uploads_rejected_total",
			Help: "Total uploads rejected by size or type checks",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(InsightViews)
	prometheus.MustRegister(UploadsTotal)
	prometheus.MustRegister(UploadsRejected)
}
