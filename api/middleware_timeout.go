package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TimeoutMiddleware bounds every request by timeout. A handler still running
// when the deadline passes has its later writes discarded and the client gets
// a 408.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &timeoutWriter{w: w, header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan interface{}, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.flush()
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if ctx.Err() == context.DeadlineExceeded {
					zap.S().Warnw("Request timeout",
						"path", r.URL.Path,
						"method", r.Method,
						"timeout", timeout)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusRequestTimeout)
					w.Write([]byte(`{"error": "Request timeout", "message": "The request took too long to process"}`))
				}
			}
		})
	}
}

// timeoutWriter buffers the handler's response until it completes in time
type timeoutWriter struct {
	w        http.ResponseWriter
	mu       sync.Mutex
	header   http.Header
	body     []byte
	code     int
	timedOut bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.code != 0 {
		return
	}
	tw.code = code
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if tw.code == 0 {
		tw.code = http.StatusOK
	}
	tw.body = append(tw.body, b...)
	return len(b), nil
}

// flush must be called with mu held
func (tw *timeoutWriter) flush() {
	dst := tw.w.Header()
	for k, v := range tw.header {
		dst[k] = v
	}
	if tw.code == 0 {
		tw.code = http.StatusOK
	}
	tw.w.WriteHeader(tw.code)
	tw.w.Write(tw.body)
}
