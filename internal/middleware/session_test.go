package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"listinglab/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup struct {
	tokens map[string]*store.User
	calls  int
}

func (s *stubLookup) BySessionToken(ctx context.Context, token string) (*store.User, error) {
	s.calls++
	if u, ok := s.tokens[token]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func sessionHandler(users *stubLookup) (http.Handler, *uuid.UUID) {
	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if ok {
			seen = id
		}
		w.WriteHeader(http.StatusOK)
	})
	cache := store.NewSessionCache(nil, 0, zerolog.Nop())
	return Session(users, cache, zerolog.Nop())(next), &seen
}

func TestSessionResolvesBearerToken(t *testing.T) {
	userID := uuid.New()
	users := &stubLookup{tokens: map[string]*store.User{"tok-1": {ID: userID}}}
	h, seen := sessionHandler(users)

	r := httptest.NewRequest(http.MethodGet, "/v1/contents/", nil)
	r.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, *seen)
}

func TestSessionFailsClosed(t *testing.T) {
	users := &stubLookup{tokens: map[string]*store.User{}}
	h, _ := sessionHandler(users)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"unknown token", "Bearer nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/contents/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
