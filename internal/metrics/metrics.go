// Package metrics exposes Prometheus collectors for the HTTP surface and
// the bulk reconciliation operations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mcphub"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	importRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_records_total",
		Help:      "Imported project records by result.",
	}, []string{"result"})

	deletedProjects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_projects_total",
		Help:      "Project identifiers submitted to authorized deletes.",
	})

	deleteRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delete_rejections_total",
		Help:      "Delete requests refused before touching the store.",
	}, []string{"reason"})

	backupRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backup_runs_total",
		Help:      "Scheduled export snapshots by result.",
	}, []string{"result"})
)

// Middleware records request count and latency keyed by the matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordImport(imported, failed int) {
	importRecords.WithLabelValues("imported").Add(float64(imported))
	importRecords.WithLabelValues("failed").Add(float64(failed))
}

func RecordDelete(n int) {
	deletedProjects.Add(float64(n))
}

// RecordDeleteRejected counts refusals; reason is "unauthorized" or "throttled".
func RecordDeleteRejected(reason string) {
	deleteRejections.WithLabelValues(reason).Inc()
}

func RecordBackup(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	backupRuns.WithLabelValues(result).Inc()
}
