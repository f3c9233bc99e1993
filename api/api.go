package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/models"
)

// Pinger reports whether the database can be reached
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckHandler reports the service as alive when the database answers a ping
func HealthCheckHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := models.HealthCheckResponse{Alive: true}
		status := http.StatusOK
		if db != nil {
			ctx, cancel := WithQueryTimeout(r.Context())
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				zap.S().Warnw("health check ping failed", "error", err)
				resp.Alive = false
				status = http.StatusServiceUnavailable
			}
		}
		b, _ := json.Marshal(resp)
		w.WriteHeader(status)
		w.Write(b)
	}
}
