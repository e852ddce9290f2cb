// Package middleware holds the request middlewares specific to this
// service; generic concerns (request id, recovery, access logs) come from
// chi's stock middleware in the router.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"listinglab/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type userIDContextKey struct{}

// UserLookup resolves an opaque session token to a user record.
type UserLookup interface {
	BySessionToken(ctx context.Context, token string) (*store.User, error)
}

// UserIDFromContext returns the authenticated user's id for the request.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDContextKey{}).(uuid.UUID)
	return id, ok
}

// WithUserID injects a user id into the context. Exposed for handler tests.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, id)
}

// Session authenticates the bearer session token on every request and fails
// closed: any missing, malformed or unknown token is a 401 before the
// handler runs. The cache is consulted first; misses fall through to the
// store and prime the cache.
func Session(users UserLookup, cache *store.SessionCache, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			if id, ok := cache.Get(r.Context(), token); ok {
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
				return
			}

			user, err := users.BySessionToken(r.Context(), token)
			if err != nil {
				logger.Debug().Err(err).Msg("session token rejected")
				unauthorized(w)
				return
			}

			cache.Put(r.Context(), token, user.ID)
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), user.ID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"invalid or missing session token"}`))
}
