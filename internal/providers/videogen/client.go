// Package videogen implements the client for the video-template render
// provider.
package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"listinglab/internal/render"
)

// Video renders run noticeably longer than image collections, so the
// transport timeout is wider than the collections client's.
const defaultTimeout = 30 * time.Second

// Client talks to the video-template provider.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient builds a Client for the given API base URL and key.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
	}
}

type renderRequest struct {
	ID           string                `json:"id"`
	Merge        []render.Modification `json:"merge"`
	Destinations []string              `json:"destinations"`
}

type renderResponse struct {
	Response struct {
		ID string `json:"id"`
	} `json:"response"`
}

// StatusPayload is the provider's render status envelope: one attribute set
// per produced asset. The render is terminal once any asset is ready.
type StatusPayload struct {
	Data []struct {
		Attributes Attributes `json:"attributes"`
	} `json:"data"`

	raw json.RawMessage
}

// Attributes describe one rendered asset.
type Attributes struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

// Raw returns the verbatim provider response body the payload was decoded
// from.
func (p *StatusPayload) Raw() json.RawMessage { return p.raw }

// Submit starts a video render from a template id and merge fields. Exactly
// one outbound call, no retries at this layer.
func (c *Client) Submit(ctx context.Context, templateID string, merge []render.Modification) (render.Job, error) {
	if err := render.ValidateModifications(merge); err != nil {
		return render.Job{}, err
	}
	if strings.TrimSpace(templateID) == "" {
		return render.Job{}, fmt.Errorf("videogen: template id is required")
	}

	body, err := json.Marshal(renderRequest{ID: templateID, Merge: merge, Destinations: []string{}})
	if err != nil {
		return render.Job{}, fmt.Errorf("videogen: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/templates/render", bytes.NewReader(body))
	if err != nil {
		return render.Job{}, fmt.Errorf("videogen: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return render.Job{}, fmt.Errorf("videogen: submit: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return render.Job{}, &render.SubmissionError{
			Provider:   render.ProviderVideo,
			StatusCode: res.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	var created renderResponse
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		return render.Job{}, fmt.Errorf("videogen: decode response: %w", err)
	}
	if created.Response.ID == "" {
		return render.Job{}, fmt.Errorf("videogen: submission response carried no render id")
	}

	return render.Job{
		ID:       created.Response.ID,
		Provider: render.ProviderVideo,
		Status:   render.StatusPending,
	}, nil
}

// FetchStatus queries the current state of a video render.
func (c *Client) FetchStatus(ctx context.Context, renderID string) (render.Status, any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/serve/v1/render/"+renderID, nil)
	if err != nil {
		return "", nil, fmt.Errorf("videogen: build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("videogen: fetch status: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", nil, fmt.Errorf("videogen: status check http %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", nil, fmt.Errorf("videogen: read status body: %w", err)
	}

	var payload StatusPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", nil, fmt.Errorf("videogen: decode status: %w", err)
	}
	payload.raw = body

	return payloadStatus(&payload), &payload, nil
}

// payloadStatus collapses per-asset statuses: ready wins, then failed, else
// the render is still pending.
func payloadStatus(p *StatusPayload) render.Status {
	anyFailed := false
	for _, d := range p.Data {
		switch strings.ToLower(d.Attributes.Status) {
		case "ready":
			return render.StatusCompleted
		case "failed", "error":
			anyFailed = true
		}
	}
	if anyFailed {
		return render.StatusFailed
	}
	return render.StatusPending
}

// Extract maps a completed payload into a normalized result: the URLs of
// every ready asset, in provider order.
func Extract(payload any) (render.Result, error) {
	p, ok := payload.(*StatusPayload)
	if !ok {
		return render.Result{}, fmt.Errorf("videogen: unexpected payload type %T", payload)
	}
	var urls []string
	for _, d := range p.Data {
		if strings.EqualFold(d.Attributes.Status, "ready") && d.Attributes.URL != "" {
			urls = append(urls, d.Attributes.URL)
		}
	}
	return render.Result{AssetURLs: urls, Raw: p.Raw()}, nil
}
