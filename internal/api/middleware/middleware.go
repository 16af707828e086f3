package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/darmiel/voxauth/internal/api/presenter"
)

// HealthPath is excluded from request logging unless it fails.
const HealthPath = "/healthz"

// LoggingMiddleware attaches a request logger to the context and logs every handled request.
// Client errors are logged at warn level, server errors at error level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		l := log.With().
			Str("correlation_id", CorrelationCtx(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(l.WithContext(r.Context())))

		if r.URL.Path == HealthPath && rec.status < http.StatusBadRequest {
			return
		}

		var ev *zerolog.Event
		switch {
		case rec.status >= http.StatusInternalServerError:
			ev = l.Error()
		case rec.status >= http.StatusBadRequest:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		ev.Int("status", rec.status).
			Int("bytes", rec.written).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request.handled")
	})
}

// RecoverMiddleware turns handler panics into a 500 response.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rv := recover()
			if rv == nil {
				return
			}
			if rv == http.ErrAbortHandler {
				panic(rv)
			}
			log.Ctx(r.Context()).Error().
				Interface("panic", rv).
				Bytes("stack", debug.Stack()).
				Msg("panic.recovered")
			presenter.Error(w, r, "internal server error", http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

type responseRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (w *responseRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}
