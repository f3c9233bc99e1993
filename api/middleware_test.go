package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddlewareGenerates(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}

func TestRequestIDMiddlewareReusesHeader(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestRecoverMiddleware(t *testing.T) {
	h := RecoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestTimeoutMiddlewarePassesThrough(t *testing.T) {
	h := TimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok": true}`))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok": true}`, rr.Body.String())
}

func TestTimeoutMiddlewareTimesOut(t *testing.T) {
	release := make(chan struct{})
	h := TimeoutMiddleware(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	close(release)

	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
	assert.Contains(t, rr.Body.String(), "Request timeout")
}

func TestMetricsMiddlewareCountsByRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	r.HandleFunc("/api/v1/cars/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/cars/{slug}", "404")
	before := testutil.ToFloat64(counter)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/cars/nissan-gt-r", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestResponseWriterHijackUnsupported(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	_, _, err := rw.Hijack()
	assert.Error(t, err)
}
