package middleware

import (
	"context"
	"net/http"

	"github.com/rs/xid"
)

const CorrelationIDHeader = "X-Correlation-ID"

type correlationKey struct{}

// CorrelationCtx retrieves the correlation ID from the context.
func CorrelationCtx(ctx context.Context) string {
	id, ok := ctx.Value(correlationKey{}).(string)
	if !ok {
		return ""
	}
	return id
}

// WithCorrelationID stores id in ctx. Outside of HTTP requests (CLI) this is how a correlation ID
// is attached to outgoing issuer calls.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// NewCorrelationID returns a new random, sortable correlation ID.
func NewCorrelationID() string {
	return xid.New().String()
}

func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationIDHeader)
		if id == "" {
			id = NewCorrelationID()
		}
		w.Header().Set(CorrelationIDHeader, id)

		next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), id)))
	})
}
