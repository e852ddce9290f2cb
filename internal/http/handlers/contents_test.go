package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"listinglab/internal/content"
	"listinglab/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentDetailRoundTrip(t *testing.T) {
	db := newStubStore()
	userID := uuid.New()
	contentID := uuid.New()
	db.details[contentID] = &store.ContentDetail{
		ID:         contentID,
		UserID:     userID,
		Kind:       content.KindPropertyImages,
		AssetURLs:  []string{"https://cdn/square.png"},
		Caption:    "cap",
		RawPayload: json.RawMessage(`{"uid":"col-1"}`),
		CreatedAt:  time.Now().UTC(),
	}
	app := newTestApp(db, "http://unused", "http://unused", nil)

	rec := httptest.NewRecorder()
	r := withURLParams(
		authedRequest(http.MethodGet, "/v1/contents/"+contentID.String(), "", userID),
		map[string]string{"id": contentID.String()},
	)
	app.ContentDetail(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp contentDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, contentID.String(), resp.ContentID)
	assert.JSONEq(t, `{"uid":"col-1"}`, string(resp.RawPayload))
}

func TestContentDetailScopedToOwner(t *testing.T) {
	db := newStubStore()
	contentID := uuid.New()
	db.details[contentID] = &store.ContentDetail{ID: contentID, UserID: uuid.New()}
	app := newTestApp(db, "http://unused", "http://unused", nil)

	rec := httptest.NewRecorder()
	r := withURLParams(
		authedRequest(http.MethodGet, "/v1/contents/"+contentID.String(), "", uuid.New()),
		map[string]string{"id": contentID.String()},
	)
	app.ContentDetail(rec, r)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentDetailRejectsBadID(t *testing.T) {
	app := newTestApp(newStubStore(), "http://unused", "http://unused", nil)
	rec := httptest.NewRecorder()
	r := withURLParams(authedRequest(http.MethodGet, "/v1/contents/xyz", "", uuid.New()), map[string]string{"id": "xyz"})
	app.ContentDetail(rec, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentList(t *testing.T) {
	db := newStubStore()
	userID := uuid.New()
	contentID := uuid.New()
	db.summaries[contentID] = &store.ContentSummary{
		ContentID:  contentID,
		UserID:     userID,
		Kind:       content.KindPropertyImages,
		Headline:   "Sea View Loft",
		PreviewURL: "https://cdn/square.png",
		CreatedAt:  time.Now().UTC(),
	}
	app := newTestApp(db, "http://unused", "http://unused", nil)

	rec := httptest.NewRecorder()
	app.ContentList(rec, authedRequest(http.MethodGet, "/v1/contents/", "", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool                 `json:"success"`
		Items   []contentSummaryItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Sea View Loft", resp.Items[0].Headline)
}
