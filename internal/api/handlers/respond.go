package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bookcook/api/internal/apperr"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const developmentKey = contextKey("development")

// DevelopmentMode marks every request so error responses include stack traces.
func DevelopmentMode(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), developmentKey, enabled)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isDevelopment(r *http.Request) bool {
	enabled, _ := r.Context().Value(developmentKey).(bool)
	return enabled
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError is the single exit for failed requests: err is mapped to a status and
// message by apperr and written as the JSON error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.From(err)

	event := log.Warn()
	if appErr.Status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Int("status", appErr.Status).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg("Request failed")

	writeJSON(w, appErr.Status, appErr.Envelope(isDevelopment(r)))
}

// NotFound answers requests that match no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, apperr.RouteNotFound())
}

// Recoverer turns a panic into a 500 error envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				writeError(w, r, apperr.Internal(err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs one line per request through zerolog.
var RequestLogger = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
	log.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("bytes", size).
		Dur("duration", duration).
		Str("remote", r.RemoteAddr).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg("Handled request")
})
