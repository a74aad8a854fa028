package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the reporting CRM.
type Metrics struct {
	// Upload metrics
	Uploads       *prometheus.CounterVec
	UploadRows    *prometheus.CounterVec
	ParseDuration *prometheus.HistogramVec

	// Dashboard metrics
	AggregateDuration prometheus.Histogram
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter

	// System metrics
	ActiveReports prometheus.Gauge
	ArchiveErrors prometheus.Counter
	DBConnections *prometheus.GaugeVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Uploads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Total number of CSV uploads processed",
			},
			[]string{"csv_type", "status"},
		),
		UploadRows: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upload_rows_total",
				Help:      "Total number of rows ingested from uploads",
			},
			[]string{"csv_type"},
		),
		ParseDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "parse_duration_seconds",
				Help:      "CSV parse duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"csv_type"},
		),
		AggregateDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "aggregate_duration_seconds",
				Help:      "Dashboard aggregation duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		CacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dashboard_cache_hits_total",
				Help:      "Dashboard cache hits",
			},
		),
		CacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dashboard_cache_misses_total",
				Help:      "Dashboard cache misses",
			},
		),
		ActiveReports: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_reports",
				Help:      "Number of reports currently stored",
			},
		),
		ArchiveErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "archive_errors_total",
				Help:      "Failed writes to the row archive",
			},
		),
		DBConnections: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections",
				Help:      "Database connection pool state",
			},
			[]string{"state"},
		),
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Requests rejected by rate limiting",
			},
			[]string{"endpoint"},
		),
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordUpload records a processed upload.
func (m *Metrics) RecordUpload(csvType, status string, rows int, parseTime time.Duration) {
	m.Uploads.WithLabelValues(csvType, status).Inc()
	if status == "ok" {
		m.UploadRows.WithLabelValues(csvType).Add(float64(rows))
		m.ParseDuration.WithLabelValues(csvType).Observe(parseTime.Seconds())
	}
}

// RecordAggregation records a dashboard aggregation pass.
func (m *Metrics) RecordAggregation(d time.Duration) {
	m.AggregateDuration.Observe(d.Seconds())
}

// RecordCacheHit records a dashboard cache hit or miss.
func (m *Metrics) RecordCacheHit(hit bool) {
	if hit {
		m.CacheHits.Inc()
	} else {
		m.CacheMisses.Inc()
	}
}

// SetActiveReports updates the stored report count.
func (m *Metrics) SetActiveReports(n int) {
	m.ActiveReports.Set(float64(n))
}

// RecordArchiveError records a failed archive write.
func (m *Metrics) RecordArchiveError() {
	m.ArchiveErrors.Inc()
}

// UpdateDBStats updates database connection metrics.
func (m *Metrics) UpdateDBStats(idle, inUse, total int) {
	m.DBConnections.WithLabelValues("idle").Set(float64(idle))
	m.DBConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues("total").Set(float64(total))
}

// RecordRateLimitHit records a rate limit hit.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	m.RateLimitHits.WithLabelValues(endpoint).Inc()
}
