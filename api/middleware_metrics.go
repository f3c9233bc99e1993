package api

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const slowRequestThreshold = time.Second

// MetricsMiddleware records request counts and latency per route template
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrappedWriter := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrappedWriter, r)

		duration := time.Since(start)
		route := routeTemplate(r)
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrappedWriter.statusCode)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

		if duration > slowRequestThreshold {
			zap.S().Warnw("Slow request detected",
				"requestId", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"route", route,
				"duration", duration,
				"status", wrappedWriter.statusCode,
			)
		}
	})
}

// routeTemplate keeps label cardinality bounded by using the matched mux
// template instead of the raw path
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// responseWriter wraps http.ResponseWriter to capture status code
// It implements http.Hijacker to support WebSocket upgrades
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker to support WebSocket upgrades
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}
