package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Logger attaches a request-scoped logger to the context and logs one line
// per completed request.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			fields := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr)
			if reqID := chimiddleware.GetReqID(req.Context()); reqID != "" {
				fields = fields.Str("request_id", reqID)
			}
			reqLogger := fields.Logger()

			ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)
			started := time.Now()

			next.ServeHTTP(ww, req.WithContext(reqLogger.WithContext(req.Context())))

			reqLogger.Debug().
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(started)).
				Msg("request completed")
		})
	}
}
