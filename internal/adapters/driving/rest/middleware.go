package rest

import (
	"context"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kisanmitra/formbridge/internal/core/domain"
	"github.com/kisanmitra/formbridge/internal/core/ports/driven"
	"github.com/kisanmitra/formbridge/internal/logger"
)

type contextKey string

const callerKey contextKey = "caller"

// CallerFrom returns the verified caller stored by the auth
// middleware, or nil on unauthenticated routes.
func CallerFrom(ctx context.Context) *domain.Caller {
	caller, _ := ctx.Value(callerKey).(*domain.Caller)
	return caller
}

// withRecovery converts handler panics into a generic 500 instead of
// killing the serving loop.
func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				writeJSON(w, http.StatusInternalServerError, errorBody{
					Error:   kindInternal,
					Message: "internal error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withRequestLog logs one line per request in verbose mode, tagged
// with a generated request id.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		logger.Debug("%s %s %s (%s)", requestID[:8], r.Method, r.URL.Path, time.Since(start))
	})
}

// withCORS answers preflights and stamps allowed origins on every
// response. Origins come from config; "*" allows any.
func withCORS(origins []string, next http.Handler) http.Handler {
	allowAny := slices.Contains(origins, "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Whether and which allow-origin header appears depends on the
		// request's Origin, so every response varies by it.
		w.Header().Set("Vary", "Origin")

		origin := r.Header.Get("Origin")
		switch {
		case origin == "":
			// Same-origin or non-browser client.
		case allowAny:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case slices.Contains(origins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withAuth verifies the caller's bearer token and stores the verified
// identity in the request context. Routes wrapped by it never run for
// anonymous callers.
func withAuth(verifier driven.TokenVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, domain.ErrUnauthorized)
			return
		}

		caller, err := verifier.Verify(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an Authorization header,
// accepting both "Bearer <token>" and a bare token.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return header
}
