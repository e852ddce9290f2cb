package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"listinglab/internal/middleware"
	"listinglab/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type contentDetailResponse struct {
	Success    bool            `json:"success"`
	ContentID  string          `json:"content_id"`
	Kind       string          `json:"kind"`
	AssetURLs  []string        `json:"asset_urls"`
	ArchiveURL string          `json:"archive_url,omitempty"`
	Caption    string          `json:"caption"`
	RawPayload json.RawMessage `json:"raw_payload"`
}

// ContentDetail re-displays a persisted generation, including the raw
// provider payload retained at persist time.
func (a *App) ContentDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		a.fail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, http.StatusBadRequest, "content id must be a uuid")
		return
	}

	detail, err := a.Contents.DetailByID(r.Context(), id, userID)
	if err != nil {
		a.fail(w, http.StatusNotFound, "content not found")
		return
	}

	a.json(w, http.StatusOK, contentDetailResponse{
		Success:    true,
		ContentID:  detail.ID.String(),
		Kind:       string(detail.Kind),
		AssetURLs:  detail.AssetURLs,
		ArchiveURL: detail.ArchiveURL,
		Caption:    detail.Caption,
		RawPayload: detail.RawPayload,
	})
}

type contentSummaryItem struct {
	ContentID  string `json:"content_id"`
	Kind       string `json:"kind"`
	Headline   string `json:"headline"`
	PreviewURL string `json:"preview_url,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// ContentList returns the summary records for the authenticated user's
// generations, newest first.
func (a *App) ContentList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		a.fail(w, http.StatusUnauthorized, "missing user context")
		return
	}

	summaries, err := a.Contents.SummariesByUser(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("content list failed")
		a.fail(w, http.StatusInternalServerError, "failed to load contents")
		return
	}

	items := make([]contentSummaryItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, summaryItem(s))
	}
	a.json(w, http.StatusOK, map[string]any{"success": true, "items": items})
}

func summaryItem(s store.ContentSummary) contentSummaryItem {
	return contentSummaryItem{
		ContentID:  s.ContentID.String(),
		Kind:       string(s.Kind),
		Headline:   s.Headline,
		PreviewURL: s.PreviewURL,
		CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
