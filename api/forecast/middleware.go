package forecast

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/evload/core/logger"
)

// RequestIDHeader carries the request identifier.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestID returns the identifier assigned by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithRequestID assigns a request identifier, reusing a well-formed incoming
// X-Request-ID, and echoes it in the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// WithAccessLog logs one line per request.
func WithAccessLog(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debugw("http request", map[string]any{
			"request_id": RequestID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		})
	})
}

// NewRouter wires the forecast endpoints behind the request-id and access-log
// middlewares.
func NewRouter(svc Forecaster, opts Options, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/predict", NewPredictHandler(svc, opts, log))
	mux.Handle("/healthz", NewHealthHandler(svc))
	mux.Handle("/", NewIndexHandler(svc, opts))
	return WithRequestID(WithAccessLog(log, mux))
}
