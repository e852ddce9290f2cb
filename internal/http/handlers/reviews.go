package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"listinglab/internal/content"
	"listinglab/internal/middleware"
	"listinglab/internal/providers/caption"
	"listinglab/internal/render"
)

type reviewRequest struct {
	Reviewer string `json:"reviewer"`
	Rating   int    `json:"rating"`
	Quote    string `json:"quote"`
}

// GenerateReview renders a client-review image collection and appends the
// event to the reviews history.
func (a *App) GenerateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		a.fail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.Quote) == "" {
		a.fail(w, http.StatusBadRequest, "quote is required")
		return
	}
	if strings.TrimSpace(req.Reviewer) == "" {
		a.fail(w, http.StatusBadRequest, "reviewer is required")
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		a.fail(w, http.StatusBadRequest, "rating must be between 0 and 5")
		return
	}

	rating := ""
	if req.Rating > 0 {
		rating = strconv.Itoa(req.Rating)
	}

	out, err := a.Generator.Run(r.Context(), content.Flow{
		Kind: content.KindReview,
		Submit: func(ctx context.Context) (render.Job, error) {
			return a.Collections.Submit(ctx, a.Config.ReviewTemplateSet, render.Modifications(
				[2]string{"review_quote", req.Quote},
				[2]string{"reviewer_name", req.Reviewer},
				[2]string{"review_rating", rating},
			))
		},
		Fetch:   a.Collections.FetchStatus,
		Extract: a.Extractor.Extract,
		Caption: caption.Request{
			SourceText: req.Quote,
			Kind:       "review",
			Locale:     middleware.LocaleFromContext(r.Context()),
			Context:    map[string]string{"reviewer": req.Reviewer},
		},
		Writes: func(job render.Job, res render.Result, captionText string) []content.Write {
			return a.historyWrites(userID, &content.HistoryEntry{
				Feature:    "reviews",
				Heading:    req.Reviewer,
				Category:   rating,
				SourceText: req.Quote,
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
