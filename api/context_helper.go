package api

import (
	"context"
	"time"
)

// QueryTimeout is the default timeout for database queries
const QueryTimeout = 10 * time.Second

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the request id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by RequestIDMiddleware, or "" when
// there is none
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
