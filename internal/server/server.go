package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/inventoria-app/inventoria/internal/backup"
	"github.com/inventoria-app/inventoria/internal/export"
	"github.com/inventoria-app/inventoria/internal/handler"
	"github.com/inventoria-app/inventoria/internal/inventory"
	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/metrics"
	"github.com/inventoria-app/inventoria/internal/report"
	"github.com/inventoria-app/inventoria/internal/settings"
	"github.com/inventoria-app/inventoria/internal/user"
)

type Server struct {
	httpServer       *http.Server
	inventoryService inventory.Service
	userService      user.Service
	reportService    report.Service
	backupService    backup.Service
	exportService    export.Service
	settingsStore    *settings.Store
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, health handler.HealthChecker, inventoryService inventory.Service, userService user.Service, reportService report.Service, backupService backup.Service, exportService export.Service, settingsStore *settings.Store) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(health))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Item routes
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handler.HandleGetItems(reportService))
			r.Post("/", handler.HandleCreateItem(inventoryService))
			r.Get("/low-stock", handler.HandleGetLowStockItems(reportService))
			r.Get("/expires-soon", handler.HandleGetExpiringSoonItems(reportService, settingsStore))

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handler.HandleGetItem(reportService))
				r.Put("/", handler.HandleUpdateItem(inventoryService))
				r.Delete("/", handler.HandleDeleteItem(inventoryService))
				r.Post("/rent", handler.HandleRentItem(inventoryService))
				r.Post("/return", handler.HandleReturnItem(inventoryService))
			})
		})

		// Category routes
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handler.HandleGetCategories(reportService))
			r.Post("/", handler.HandleCreateCategory(inventoryService))
			r.Put("/{id}", handler.HandleUpdateCategory(inventoryService))
			r.Delete("/{id}", handler.HandleDeleteCategory(inventoryService))
		})

		// User routes
		r.Route("/users", func(r chi.Router) {
			r.Get("/", handler.HandleGetUsers(userService))
			r.Post("/", handler.HandleCreateUser(userService))
			r.Put("/{id}", handler.HandleUpdateUser(userService))
			r.Delete("/{id}", handler.HandleDeleteUser(userService))
		})

		// Transaction log
		r.Get("/transactions", handler.HandleGetTransactions(reportService))

		// Dashboard
		r.Get("/dashboard/stats", handler.HandleDashboardStats(reportService))

		// Database maintenance routes
		r.Route("/database", func(r chi.Router) {
			r.Get("/backup/export", handler.HandleExportBackup(backupService))
			r.Post("/backup/import", handler.HandleImportBackup(backupService))
			r.Get("/export/inventory", handler.HandleExportInventory(exportService))
			r.Get("/export/activity", handler.HandleExportActivity(exportService))
			r.Post("/flush-activity", handler.HandleFlushActivity(backupService))
		})

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/expires-threshold", handler.HandleGetExpiresThreshold(settingsStore))
			r.Put("/expires-threshold", handler.HandleUpdateExpiresThreshold(settingsStore))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		inventoryService: inventoryService,
		userService:      userService,
		reportService:    reportService,
		backupService:    backupService,
		exportService:    exportService,
		settingsStore:    settingsStore,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
