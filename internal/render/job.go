// Package render holds the provider-neutral job model and the polling engine
// shared by every content-generation flow.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Provider identifies which rendering backend a job was submitted to.
type Provider string

const (
	// ProviderCollections is the image-collection backend: one submission
	// renders every template variant in a template set.
	ProviderCollections Provider = "collections"
	// ProviderVideo is the video-template backend.
	ProviderVideo Provider = "video"
)

// Status is the lifecycle state of a render job.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusTimedOut  Status = "timed_out"
)

// Terminal reports whether no further transition can occur from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusTimedOut:
		return true
	}
	return false
}

// Modification is a single field substitution sent to a render provider.
// Field names must match the target template's placeholder names; the
// provider, not this layer, validates template compatibility.
type Modification struct {
	Field string `json:"name"`
	Value string `json:"value"`
}

// Modifications builds an ordered modification list from field/value pairs,
// omitting entries whose value is blank. Providers treat an empty string as a
// literal substitution, so absent source values must be left out entirely
// rather than submitted as placeholders.
func Modifications(pairs ...[2]string) []Modification {
	mods := make([]Modification, 0, len(pairs))
	for _, p := range pairs {
		if strings.TrimSpace(p[1]) == "" {
			continue
		}
		mods = append(mods, Modification{Field: p[0], Value: p[1]})
	}
	return mods
}

// Job is the descriptor returned by a successful submission. It lives only
// for the duration of the owning request; only its result is persisted.
type Job struct {
	ID       string
	Provider Provider
	Status   Status
}

// Result is the normalized outcome of a completed job.
type Result struct {
	// AssetURLs is the ordered list of produced asset URLs. The first entry
	// is the primary asset.
	AssetURLs []string
	// ArchiveURL points at a bundled archive of all assets, when the
	// provider produced one.
	ArchiveURL string
	// Raw retains the full completed provider payload for later re-display.
	Raw json.RawMessage
}

// PrimaryAssetURL returns the first asset URL, or "" for an assetless result.
func (r Result) PrimaryAssetURL() string {
	if len(r.AssetURLs) == 0 {
		return ""
	}
	return r.AssetURLs[0]
}

// ValidateModifications enforces the submission input constraint shared by
// all providers: at least one modification, none with a blank field name.
func ValidateModifications(mods []Modification) error {
	if len(mods) == 0 {
		return fmt.Errorf("render: modifications must be non-empty")
	}
	for i, m := range mods {
		if strings.TrimSpace(m.Field) == "" {
			return fmt.Errorf("render: modification %d has no field name", i)
		}
	}
	return nil
}
