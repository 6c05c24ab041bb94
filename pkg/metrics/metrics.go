package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_http_requests_total",
		Help: "HTTP requests handled by the console backend",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_http_request_duration_seconds",
		Help:    "Latency of console HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	upstreamFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_upstream_fetches_total",
		Help: "Record store fetches from the warranty API by outcome",
	}, []string{"view", "outcome"})

	staleServesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_stale_serves_total",
		Help: "Lists served from a stale snapshot after a failed refresh",
	}, []string{"view"})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_exports_total",
		Help: "Export files produced",
	}, []string{"view", "format"})

	exportRows = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_export_rows",
		Help:    "Rows per export file",
		Buckets: []float64{1, 10, 100, 500, 1000, 2500, 5000},
	}, []string{"view"})
)

func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func UpstreamFetch(view string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamFetchesTotal.WithLabelValues(view, outcome).Inc()
}

func StaleServe(view string) {
	staleServesTotal.WithLabelValues(view).Inc()
}

func Export(view, format string, rows int) {
	exportsTotal.WithLabelValues(view, format).Inc()
	exportRows.WithLabelValues(view).Observe(float64(rows))
}
