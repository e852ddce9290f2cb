// Package collections implements the client for the image-collection render
// provider: one submission renders every template variant in a template set.
package collections

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

const defaultTimeout = 15 * time.Second

// Client talks to the collections provider.
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

type createRequest struct {
	TemplateSet   string                `json:"template_set"`
	Modifications []render.Modification `json:"modifications"`
}

type createResponse struct {
	UID    string `json:"uid"`
	Status string `json:"status"`
}

// StatusPayload is the provider's collection object. Depending on account
// configuration the provider reports produced assets either as an ordered
// list or as a keyed map; both shapes are retained here and normalized by
// Extract.
type StatusPayload struct {
	UID       string            `json:"uid"`
	Status    string            `json:"status"`
	Images    []Image           `json:"images,omitempty"`
	ImageURLs map[string]string `json:"image_urls,omitempty"`
	ZipURL    string            `json:"zip_url,omitempty"`

	raw json.RawMessage
}

// Image is one rendered asset in the list-shaped payload.
type Image struct {
	Name string `json:"name"`
	URL  string `json:"image_url"`
}

// Raw returns the verbatim provider response body the payload was decoded
// from.
func (p *StatusPayload) Raw() json.RawMessage { return p.raw }

// Submit creates a collection render job. Exactly one outbound call, no
// retries here: transient-failure handling belongs to the status-check
// phase.
func (c *Client) Submit(ctx context.Context, templateSet string, mods []render.Modification) (render.Job, error) {
	if err := render.ValidateModifications(mods); err != nil {
		return render.Job{}, err
	}
	if strings.TrimSpace(templateSet) == "" {
		return render.Job{}, fmt.Errorf("collections: template set is required")
	}

	body, err := json.Marshal(createRequest{TemplateSet: templateSet, Modifications: mods})
	if err != nil {
		return render.Job{}, fmt.Errorf("collections: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/collections", bytes.NewReader(body))
	if err != nil {
		return render.Job{}, fmt.Errorf("collections: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return render.Job{}, fmt.Errorf("collections: submit: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return render.Job{}, &render.SubmissionError{
			Provider:   render.ProviderCollections,
			StatusCode: res.StatusCode,
			Message:    readProviderMessage(res.Body),
		}
	}

	var created createResponse
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		return render.Job{}, fmt.Errorf("collections: decode response: %w", err)
	}

	return render.Job{
		ID:       created.UID,
		Provider: render.ProviderCollections,
		Status:   mapStatus(created.Status),
	}, nil
}

// FetchStatus queries the current state of a collection job.
func (c *Client) FetchStatus(ctx context.Context, uid string) (render.Status, any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/collections/"+uid, nil)
	if err != nil {
		return "", nil, fmt.Errorf("collections: build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("collections: fetch status: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", nil, fmt.Errorf("collections: status check http %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", nil, fmt.Errorf("collections: read status body: %w", err)
	}

	var payload StatusPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", nil, fmt.Errorf("collections: decode status: %w", err)
	}
	payload.raw = body

	return mapStatus(payload.Status), &payload, nil
}

func mapStatus(s string) render.Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed":
		return render.StatusCompleted
	case "failed":
		return render.StatusFailed
	case "pending", "in_progress":
		return render.StatusPending
	case "":
		return render.StatusSubmitted
	default:
		return render.StatusPending
	}
}

func readProviderMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return strings.TrimSpace(string(body))
}
