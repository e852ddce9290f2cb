package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"listinglab/internal/content"
	"listinglab/internal/middleware"
	"listinglab/internal/providers/caption"
	"listinglab/internal/render"

	"github.com/google/uuid"
)

type tipRequest struct {
	Heading  string `json:"heading"`
	Category string `json:"category"`
	Advice   string `json:"advice"`
}

type historyFlowResponse struct {
	Success   bool     `json:"success"`
	ImageURLs []string `json:"image_urls"`
	ZipURL    string   `json:"zip_url,omitempty"`
	Caption   string   `json:"caption"`
}

// GenerateTip renders an agent-advice image collection and appends the
// event to the tips history.
func (a *App) GenerateTip(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		a.fail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	var req tipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.Heading) == "" {
		a.fail(w, http.StatusBadRequest, "heading is required")
		return
	}
	if strings.TrimSpace(req.Advice) == "" {
		a.fail(w, http.StatusBadRequest, "advice is required")
		return
	}

	out, err := a.Generator.Run(r.Context(), content.Flow{
		Kind: content.KindTip,
		Submit: func(ctx context.Context) (render.Job, error) {
			return a.Collections.Submit(ctx, a.Config.TipTemplateSet, render.Modifications(
				[2]string{"advice_heading", req.Heading},
				[2]string{"advice_category", req.Category},
				[2]string{"advice_text", req.Advice},
			))
		},
		Fetch:   a.Collections.FetchStatus,
		Extract: a.Extractor.Extract,
		Caption: caption.Request{
			SourceText: req.Advice,
			Kind:       "tip",
			Locale:     middleware.LocaleFromContext(r.Context()),
			Context:    map[string]string{"heading": req.Heading, "category": req.Category},
		},
		Writes: func(job render.Job, res render.Result, captionText string) []content.Write {
			return a.historyWrites(userID, &content.HistoryEntry{
				Feature:    "tips",
				Heading:    req.Heading,
				Category:   req.Category,
				SourceText: req.Advice,
				Timestamp:  time.Now().UTC(),
				JobID:      job.ID,
				Caption:    captionText,
			})
		},
	})
	if err != nil {
		a.failFrom(w, err)
		return
	}

	a.json(w, http.StatusOK, historyFlowResponse{
		Success:   true,
		ImageURLs: out.Result.AssetURLs,
		ZipURL:    out.Result.ArchiveURL,
		Caption:   out.Caption,
	})
}

// historyWrites is the write set for feature-history flows: one append-style
// write replacing the detail/summary/index trio, and required since it is
// the only record of the generation.
func (a *App) historyWrites(userID uuid.UUID, entry *content.HistoryEntry) []content.Write {
	return []content.Write{
		{
			Name:     entry.Feature + "_history",
			Required: true,
			Fn: func(ctx context.Context) error {
				return a.Histories.Append(ctx, userID, entry)
			},
		},
	}
}
