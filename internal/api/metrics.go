package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service collectors. Each instance registers on its own
// registerer so tests can build isolated servers.
type Metrics struct {
	analyses         *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	snapshotsSaved   prometheus.Counter
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// NewMetrics registers the service collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slotsense",
			Name:      "analyses_total",
			Help:      "Analyses run, by recommendation.",
		}, []string{"recommendation"}),
		analysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "slotsense",
			Name:      "analysis_duration_seconds",
			Help:      "Time spent in one engine run.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		snapshotsSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "slotsense",
			Name:      "snapshots_saved_total",
			Help:      "Snapshots written to the repository.",
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slotsense",
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "slotsense",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (m *Metrics) observeAnalysis(recommendation string, d time.Duration) {
	m.analyses.WithLabelValues(recommendation).Inc()
	m.analysisDuration.Observe(d.Seconds())
}

// middleware records request counts and latency by matched route
func (m *Metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
