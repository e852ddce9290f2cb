package httpapi

import (
	stdhttp "net/http"

	"listinglab/internal/http/handlers"
	mw "listinglab/internal/middleware"
	"listinglab/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter assembles the HTTP surface: health is public, everything else
// sits behind session auth and locale detection.
func NewRouter(app *handlers.App, sessions *store.SessionCache, country mw.CountryLookup, logger zerolog.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(mw.Session(app.Users, sessions, logger))
		r.Use(mw.I18N(app.Config.DefaultLocale, country))

		r.Route("/v1/generate", func(r chi.Router) {
			r.Post("/property/images", app.PropertyImages)
			r.Post("/property/video", app.PropertyVideo)
			r.Post("/tip", app.GenerateTip)
			r.Post("/review", app.GenerateReview)
		})

		r.Route("/v1/history", func(r chi.Router) {
			r.Get("/{feature}", app.HistoryList)
			r.Delete("/{feature}/{timestamp}", app.HistoryDelete)
		})

		r.Route("/v1/contents", func(r chi.Router) {
			r.Get("/", app.ContentList)
			r.Get("/{id}", app.ContentDetail)
		})
	})

	return r
}
