// Package api provides the HTTP surface of the document server: a chi router
// over the document service, JWT or desktop-mode authentication, health
// probes, and the Prometheus endpoint.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Clay-Ferguson/quanta-docs/internal/logger"
	"github.com/Clay-Ferguson/quanta-docs/pkg/api/auth"
	"github.com/Clay-Ferguson/quanta-docs/pkg/api/handlers"
	"github.com/Clay-Ferguson/quanta-docs/pkg/api/middleware"
	"github.com/Clay-Ferguson/quanta-docs/pkg/config"
	"github.com/Clay-Ferguson/quanta-docs/pkg/docs"
	"github.com/Clay-Ferguson/quanta-docs/pkg/metrics"
)

// NewRouter creates and configures the chi router with all middleware and
// routes.
//
// Middleware stack (order matters):
//   - Request ID for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery
//   - Request timeout
//
// Document routes require authentication: bearer tokens in multi-user mode,
// an implicit admin principal in desktop mode. Health and metrics routes are
// unauthenticated.
func NewRouter(cfg *config.Config, svc *docs.Service, jwtService *auth.JWTService) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	if metrics.IsEnabled() {
		r.Use(metricsMiddleware)
	}

	healthHandler := handlers.NewHealthHandler(svc.Engine(), cfg.DocRoots)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	if metrics.IsEnabled() {
		r.Method(http.MethodGet, cfg.Metrics.Path, metrics.Handler())
	}

	if !cfg.DesktopMode {
		authHandler := handlers.NewAuthHandler(cfg.Users, jwtService)
		r.Post("/auth/token", authHandler.Token)
	}

	docsHandler := handlers.NewDocsHandler(svc, cfg.DocRoots)
	r.Group(func(r chi.Router) {
		if cfg.DesktopMode {
			r.Use(middleware.DesktopAuth())
		} else {
			r.Use(middleware.JWTAuth(jwtService))
		}

		r.Post("/createFolder", docsHandler.CreateFolder)
		r.Post("/createFile", docsHandler.CreateFile)
		r.Post("/saveFile", docsHandler.SaveFile)
		r.Post("/pasteItems", docsHandler.PasteItems)
		r.Post("/moveUpOrDown", docsHandler.MoveUpOrDown)
		r.Post("/deleteItems", docsHandler.DeleteItems)
		r.Post("/rename", docsHandler.Rename)
		r.Post("/setPublic", docsHandler.SetPublic)
		r.Post("/searchText", docsHandler.SearchText)
		r.Post("/extractTags", docsHandler.ExtractTags)
		r.Post("/scanAndUpdateTags", docsHandler.ScanAndUpdateTags)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	return r
}

// requestLogger logs request start (DEBUG) and completion (INFO) using the
// internal logger, and seeds the log context with the request id and client
// address so every downstream log line carries them.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chimiddleware.GetReqID(r.Context())

		logCtx := logger.NewLogContext(r.RemoteAddr).WithRequestID(requestID)
		ctx := logger.WithContext(r.Context(), logCtx)
		r = r.WithContext(ctx)

		logger.DebugCtx(ctx, "API request started",
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
		)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.InfoCtx(ctx, "API request completed",
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
			logger.KeyStatus, ww.Status(),
			logger.KeyDurationMs, logger.Duration(start),
		)
	})
}

// metricsMiddleware records per-route request counts and latencies. The chi
// route pattern keeps the label cardinality bounded.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(r.Method, route, ww.Status(), time.Since(start))
	})
}
