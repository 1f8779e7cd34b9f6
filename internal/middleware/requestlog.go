package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestLog writes one INFO line per request with status, size, and
// latency.  /healthz and /metrics log at DEBUG so scrapers do not flood the
// daily file.
func RequestLog(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logf := log.Infow
			if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
				logf = log.Debugw
			}
			logf("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"dur", time.Since(start),
				"req_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}
