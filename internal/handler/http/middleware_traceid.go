package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// maxTraceIDLength caps caller-supplied trace IDs so a hostile header cannot
// bloat every log line of the request.
const maxTraceIDLength = 64

// withTraceID stamps every request with a trace ID, binds it into the
// request-scoped logger and echoes it back on the response.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := traceIDForRequest(r)

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

// traceIDForRequest reuses the caller-supplied X-Trace-ID when it looks
// plausible and mints a fresh UUID otherwise.
func traceIDForRequest(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(traceIDHeader))
	if id == "" || len(id) > maxTraceIDLength {
		return uuid.NewString()
	}
	return id
}
