package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func localeFor(t *testing.T, configure func(r *http.Request), lookup CountryLookup) string {
	t.Helper()
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LocaleFromContext(r.Context())
	})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if configure != nil {
		configure(r)
	}
	I18N("en", lookup)(next).ServeHTTP(httptest.NewRecorder(), r)
	return got
}

func TestI18NHeaderWins(t *testing.T) {
	got := localeFor(t, func(r *http.Request) {
		r.Header.Set("X-Locale", "es-MX")
		r.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	}, nil)
	assert.Equal(t, "es", got)
}

func TestI18NAcceptLanguage(t *testing.T) {
	got := localeFor(t, func(r *http.Request) {
		r.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.5")
	}, nil)
	assert.Equal(t, "pt", got)
}

func TestI18NGeoIPFallback(t *testing.T) {
	lookup := func(ip string) (string, error) { return "de", nil }
	got := localeFor(t, func(r *http.Request) {
		r.RemoteAddr = "203.0.113.9:4431"
	}, lookup)
	assert.Equal(t, "de", got)
}

func TestI18NDefault(t *testing.T) {
	assert.Equal(t, "en", localeFor(t, nil, nil))
}
