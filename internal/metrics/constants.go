package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameItemsRented       = "items_rented_total"
	MetricNameItemsReturned     = "items_returned_total"
	MetricNameStockMovements    = "stock_movements_total"
	MetricNameBackupImports     = "backup_imports_total"
	MetricNameExportsGenerated  = "exports_generated_total"
	MetricNameSearchesPerformed = "searches_performed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextItemsRented       = "Total number of item units rented out"
	HelpTextItemsReturned     = "Total number of item units returned"
	HelpTextStockMovements    = "Total number of recorded stock movements"
	HelpTextBackupImports     = "Total number of snapshot imports"
	HelpTextExportsGenerated  = "Total number of spreadsheet exports generated"
	HelpTextSearchesPerformed = "Total number of item searches performed"
)

// ============================================================================
// Metric Labels
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelKind   = "kind"
	LabelResult = "result"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
