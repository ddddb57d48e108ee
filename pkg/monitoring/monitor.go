package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// CatalogMaterials 按审核状态统计的资料数量
	CatalogMaterials = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_materials",
			Help: "Number of catalog materials by approval state",
		},
		[]string{"state"},
	)

	MaterialDownloads = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_downloads_total",
			Help: "Total number of material downloads",
		},
	)

	// ChatReplies outcome: ok, cached, fallback, not_configured
	ChatReplies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_replies_total",
			Help: "Chat relay replies by outcome",
		},
		[]string{"provider", "outcome"},
	)
)

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(CatalogMaterials)
		prometheus.MustRegister(MaterialDownloads)
		prometheus.MustRegister(ChatReplies)
	})
}

func SetCatalogCounts(pending, approved int) {
	CatalogMaterials.WithLabelValues("pending").Set(float64(pending))
	CatalogMaterials.WithLabelValues("approved").Set(float64(approved))
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
