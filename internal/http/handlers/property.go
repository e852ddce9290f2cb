package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"listinglab/internal/content"
	"listinglab/internal/middleware"
	"listinglab/internal/providers/caption"
	"listinglab/internal/providers/videogen"
	"listinglab/internal/render"
	"listinglab/internal/store"

	"github.com/google/uuid"
)

// maxPropertyPhotos is the number of photo placeholders the property
// template sets expose.
const maxPropertyPhotos = 4

type propertyRequest struct {
	Headline      string   `json:"headline"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Price         string   `json:"price"`
	AgentName     string   `json:"agent_name"`
	AgentPhotoURL string   `json:"agent_photo_url"`
	PhotoURLs     []string `json:"photo_urls"`
	TemplateSet   string   `json:"template_set"`
}

func (p *propertyRequest) validate() string {
	if strings.TrimSpace(p.Headline) == "" {
		return "headline is required"
	}
	if len(p.PhotoURLs) == 0 || strings.TrimSpace(p.PhotoURLs[0]) == "" {
		return "at least one photo url is required"
	}
	return ""
}

// modifications builds the provider field substitutions, omitting optional
// fields whose source value is absent.
func (p *propertyRequest) modifications() []render.Modification {
	mods := render.Modifications(
		[2]string{"property_headline", p.Headline},
		[2]string{"property_address", p.Address},
		[2]string{"property_price", p.Price},
		[2]string{"agent_name", p.AgentName},
		[2]string{"agent_photo", p.AgentPhotoURL},
	)
	for i, url := range p.PhotoURLs {
		if i >= maxPropertyPhotos {
			break
		}
		if strings.TrimSpace(url) == "" {
			continue
		}
		mods = append(mods, render.Modification{Field: fmt.Sprintf("property_photo_%d", i+1), Value: url})
	}
	return mods
}

func (p *propertyRequest) captionRequest(locale string) caption.Request {
	source := strings.TrimSpace(p.Description)
	if source == "" {
		source = p.Headline
	}
	ctx := map[string]string{"headline": p.Headline}
	if p.Address != "" {
		ctx["address"] = p.Address
	}
	if p.Price != "" {
		ctx["price"] = p.Price
	}
	return caption.Request{SourceText: source, Kind: "property", Locale: locale, Context: ctx}
}

type propertyImagesResponse struct {
	Success   bool     `json:"success"`
	ContentID string   `json:"content_id"`
	ImageURLs []string `json:"image_urls"`
	ZipURL    string   `json:"zip_url,omitempty"`
	Caption   string   `json:"caption"`
}

// PropertyImages renders the property image collection, captions it and
// persists detail, summary and the user's content index.
func (a *App) PropertyImages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		a.fail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg := req.validate(); msg != "" {
		a.fail(w, http.StatusBadRequest, msg)
		return
	}

	templateSet := req.TemplateSet
	if templateSet == "" {
		templateSet = a.Config.PropertyTemplateSet
	}

	contentID := uuid.New()
	out, err := a.Generator.Run(r.Context(), content.Flow{
		Kind: content.KindPropertyImages,
		Submit: func(ctx context.Context) (render.Job, error) {
			return a.Collections.Submit(ctx, templateSet, req.modifications())
		},
		Fetch:   a.Collections.FetchStatus,
		Extract: a.Extractor.Extract,
		Caption: req.captionRequest(middleware.LocaleFromContext(r.Context())),
		Writes: func(job render.Job, res render.Result, captionText string) []content.Write {
			return a.propertyWrites(userID, contentID, content.KindPropertyImages, req.Headline, res, captionText)
		},
	})
	if err != nil {
		a.failFrom(w, err)
		return
	}

	a.json(w, http.StatusOK, propertyImagesResponse{
		Success:   true,
		ContentID: contentID.String(),
		ImageURLs: out.Result.AssetURLs,
		ZipURL:    out.Result.ArchiveURL,
		Caption:   out.Caption,
	})
}

type propertyVideoResponse struct {
	Success   bool   `json:"success"`
	ContentID string `json:"content_id"`
	VideoURL  string `json:"video_url"`
	Caption   string `json:"caption"`
}

// PropertyVideo renders the property video template over the same listing
// payload.
func (a *App) PropertyVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		a.fail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	if a.Config.VideoTemplateID == "" {
		a.fail(w, http.StatusInternalServerError, "video rendering is not configured")
		return
	}
	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg := req.validate(); msg != "" {
		a.fail(w, http.StatusBadRequest, msg)
		return
	}

	contentID := uuid.New()
	out, err := a.Generator.Run(r.Context(), content.Flow{
		Kind: content.KindPropertyVideo,
		Submit: func(ctx context.Context) (render.Job, error) {
			return a.Video.Submit(ctx, a.Config.VideoTemplateID, req.modifications())
		},
		Fetch:   a.Video.FetchStatus,
		Extract: videogen.Extract,
		Caption: req.captionRequest(middleware.LocaleFromContext(r.Context())),
		Writes: func(job render.Job, res render.Result, captionText string) []content.Write {
			return a.propertyWrites(userID, contentID, content.KindPropertyVideo, req.Headline, res, captionText)
		},
	})
	if err != nil {
		a.failFrom(w, err)
		return
	}

	a.json(w, http.StatusOK, propertyVideoResponse{
		Success:   true,
		ContentID: contentID.String(),
		VideoURL:  out.Result.PrimaryAssetURL(),
		Caption:   out.Caption,
	})
}

// propertyWrites is the canonical write set for a property-style generation:
// detail and summary are required, the user's content index is a
// convenience and only best-effort.
func (a *App) propertyWrites(userID, contentID uuid.UUID, kind content.Kind, headline string, res render.Result, captionText string) []content.Write {
	now := time.Now().UTC()
	return []content.Write{
		{
			Name:     "content_detail",
			Required: true,
			Fn: func(ctx context.Context) error {
				return a.Contents.PutDetail(ctx, &store.ContentDetail{
					ID:         contentID,
					UserID:     userID,
					Kind:       kind,
					AssetURLs:  res.AssetURLs,
					ArchiveURL: res.ArchiveURL,
					Caption:    captionText,
					RawPayload: res.Raw,
					CreatedAt:  now,
				})
			},
		},
		{
			Name:     "content_summary",
			Required: true,
			Fn: func(ctx context.Context) error {
				return a.Contents.PutSummary(ctx, &store.ContentSummary{
					ContentID:  contentID,
					UserID:     userID,
					Kind:       kind,
					Headline:   headline,
					PreviewURL: res.PrimaryAssetURL(),
					CreatedAt:  now,
				})
			},
		},
		{
			Name:     "user_content_index",
			Required: false,
			Fn: func(ctx context.Context) error {
				return a.Users.AppendContentID(ctx, userID, contentID)
			},
		},
	}
}
