package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	ItemsRented = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsRented,
			Help: HelpTextItemsRented,
		},
	)

	ItemsReturned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsReturned,
			Help: HelpTextItemsReturned,
		},
	)

	StockMovements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStockMovements,
			Help: HelpTextStockMovements,
		},
		[]string{LabelType},
	)

	BackupImports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBackupImports,
			Help: HelpTextBackupImports,
		},
		[]string{LabelResult},
	)

	ExportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExportsGenerated,
			Help: HelpTextExportsGenerated,
		},
		[]string{LabelKind},
	)

	SearchesPerformed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSearchesPerformed,
			Help: HelpTextSearchesPerformed,
		},
	)
)
