package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exchange-map-service/internal/metrics"
	"exchange-map-service/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

type Router struct {
	handler   *Handler
	log       *logger.Logger
	metrics   *metrics.Metrics
	staticDir string
}

func NewRouter(handler *Handler, log *logger.Logger, metrics *metrics.Metrics, staticDir string) *Router {
	return &Router{
		handler:   handler,
		log:       log,
		metrics:   metrics,
		staticDir: staticDir,
	}
}

func (r *Router) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			req.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, req)
	})
}

func (r *Router) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()

		crw := &customResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(crw, req)

		duration := time.Since(start)
		r.metrics.HTTPRequestDuration.WithLabelValues(req.URL.Path, req.Method).Observe(duration.Seconds())
		r.metrics.HTTPRequestsTotal.WithLabelValues(req.URL.Path, req.Method, statusClass(crw.statusCode)).Inc()

		r.log.Info("HTTP request",
			"method", req.Method,
			"path", req.URL.Path,
			"query", req.URL.RawQuery,
			"status", crw.statusCode,
			"duration", duration,
			"remote_addr", req.RemoteAddr,
			"user_agent", req.UserAgent(),
			"request_id", req.Header.Get(requestIDHeader),
		)
	})
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

type customResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (crw *customResponseWriter) WriteHeader(code int) {
	crw.statusCode = code
	crw.ResponseWriter.WriteHeader(code)
}

func (r *Router) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/exchanges", r.handler.ListExchangesHandler)
	mux.HandleFunc("/api/v1/rates", r.handler.GetRatesHandler)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if r.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(r.staticDir)))
	}

	apiWithMiddleware := r.requestIDMiddleware(r.loggingMiddleware(mux))

	rootMux := http.NewServeMux()

	rootMux.Handle("/", apiWithMiddleware)
	rootMux.Handle("/metrics", promhttp.Handler())

	return rootMux
}
