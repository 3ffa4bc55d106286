package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mytheresa/catalog-api/app/api"
	"github.com/mytheresa/catalog-api/internal/logger"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// requestID tags every request with an id (the inbound X-Request-ID when
// present) and stores a logger carrying it in the request context.
func requestID(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := logger.WithRequestID(r.Context(), log, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				logger.FromContext(r.Context()).Error("panic serving request",
					zap.Any("panic", p),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				)
				if rec.status == 0 {
					api.WriteError(rec, r, http.StatusInternalServerError, "Internal server error")
				}
			}
		}()
		next.ServeHTTP(rec, r)
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		logger.FromContext(r.Context()).Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func limitBody(next http.Handler, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next.ServeHTTP(w, r)
	})
}
