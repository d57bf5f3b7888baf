package http

import (
	"net/http"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
)

// withLogging emits one access-log entry per request. The status and body
// size are captured through the responseWriter decorator; plaintext never
// appears here, only URIs and sizes.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
