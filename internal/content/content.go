// Package content orchestrates generation flows: submit a render job, drive
// it to a terminal state, normalize the result, enrich it with a caption and
// fan it out across the persistent stores.
package content

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind names a generation flow.
type Kind string

const (
	KindPropertyImages Kind = "property_images"
	KindPropertyVideo  Kind = "property_video"
	KindTip            Kind = "tip"
	KindReview         Kind = "review"
)

// Generated is the durable artifact of one successful render job. Immutable
// once written; deletion is a separate user action.
type Generated struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Kind       Kind
	AssetURLs  []string
	ArchiveURL string
	Caption    string
	Raw        json.RawMessage
	CreatedAt  time.Time
}

// HistoryEntry is an append-only record of one generation event for the
// tips/reviews features. The timestamp is the entry's natural key: entries
// are appended, never mutated, and deleted only by explicit user action
// keyed on that timestamp.
type HistoryEntry struct {
	Feature    string    `json:"feature"`
	Heading    string    `json:"heading"`
	Category   string    `json:"category,omitempty"`
	SourceText string    `json:"source_text"`
	Timestamp  time.Time `json:"timestamp"`
	JobID      string    `json:"job_id"`
	Caption    string    `json:"caption"`
}
