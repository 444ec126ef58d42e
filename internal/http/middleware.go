package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/maison/internal/logger"
	"github.com/fjod/maison/internal/session"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionHeader carries the browser session id in both directions.
const SessionHeader = "X-Session-ID"

const maxSessionIDLength = 128

type ctxKey int

const sessionKey ctxKey = iota

// Sessions hands out the per-browser state, held until release is called.
type Sessions interface {
	Acquire(id string) (s *session.Session, release func())
}

// SessionMiddleware resolves the X-Session-ID header to a session, starting a new one
// with a generated id when the header is absent. The id is echoed on the response.
func SessionMiddleware(sessions Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				id = uuid.NewString()
			}
			if len(id) > maxSessionIDLength {
				respondError(w, http.StatusBadRequest, "invalid_session", "session id too long")
				return
			}

			s, release := sessions.Acquire(id)
			defer release()
			w.Header().Set(SessionHeader, id)

			ctx := context.WithValue(r.Context(), sessionKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromContext(ctx context.Context) *session.Session {
	if s, ok := ctx.Value(sessionKey).(*session.Session); ok {
		return s
	}
	return nil
}

// AccessLog writes one line per request.
func AccessLog(l *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.With(r.Context(), l).Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("session_id", ww.Header().Get(SessionHeader)),
			)
		})
	}
}
