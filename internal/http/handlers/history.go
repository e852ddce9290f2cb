package handlers

import (
	"net/http"
	"time"

	"listinglab/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func validFeature(feature string) bool {
	return feature == "tips" || feature == "reviews"
}

// HistoryList returns the generation history for one feature, newest first.
func (a *App) HistoryList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		a.fail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	feature := chi.URLParam(r, "feature")
	if !validFeature(feature) {
		a.fail(w, http.StatusBadRequest, "unknown history feature")
		return
	}

	entries, err := a.Histories.List(r.Context(), userID, feature)
	if err != nil {
		a.Logger.Error().Err(err).Str("feature", feature).Msg("history list failed")
		a.fail(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	a.json(w, http.StatusOK, map[string]any{"success": true, "entries": entries})
}

// HistoryDelete removes a single entry by its natural key, the entry
// timestamp.
func (a *App) HistoryDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		a.fail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	feature := chi.URLParam(r, "feature")
	if !validFeature(feature) {
		a.fail(w, http.StatusBadRequest, "unknown history feature")
		return
	}
	ts, err := time.Parse(time.RFC3339Nano, chi.URLParam(r, "timestamp"))
	if err != nil {
		a.fail(w, http.StatusBadRequest, "timestamp must be RFC 3339")
		return
	}

	if err := a.Histories.Delete(r.Context(), userID, feature, ts); err != nil {
		a.Logger.Warn().Err(err).Str("feature", feature).Msg("history delete failed")
		a.fail(w, http.StatusNotFound, "history entry not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{"success": true})
}
