// Package store implements the keyed record store behind the generation
// flows on Postgres, plus the Redis session cache.
package store

import (
	"context"
	"encoding/json"
	"time"

	"listinglab/internal/content"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the store needs. Tests substitute
// stubs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// User is the owning record for generated content.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Locale    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContentDetail is the full record of one generation, keyed by content id.
type ContentDetail struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Kind       content.Kind
	AssetURLs  []string
	ArchiveURL string
	Caption    string
	RawPayload json.RawMessage
	CreatedAt  time.Time
}

// ContentSummary is the list-view record for one generation.
type ContentSummary struct {
	ContentID  uuid.UUID
	UserID     uuid.UUID
	Kind       content.Kind
	Headline   string
	PreviewURL string
	CreatedAt  time.Time
}

// Users resolves and mutates user records.
type Users interface {
	// BySessionToken returns the user owning the opaque session token, or
	// pgx.ErrNoRows when the token is unknown.
	BySessionToken(ctx context.Context, token string) (*User, error)
	// AppendContentID adds a content id to the user's convenience index.
	AppendContentID(ctx context.Context, userID, contentID uuid.UUID) error
}

// Contents stores detail and summary records.
type Contents interface {
	PutDetail(ctx context.Context, d *ContentDetail) error
	PutSummary(ctx context.Context, s *ContentSummary) error
	DetailByID(ctx context.Context, id, userID uuid.UUID) (*ContentDetail, error)
	SummariesByUser(ctx context.Context, userID uuid.UUID) ([]ContentSummary, error)
}

// Histories stores the append-only per-feature generation history.
type Histories interface {
	Append(ctx context.Context, userID uuid.UUID, e *content.HistoryEntry) error
	List(ctx context.Context, userID uuid.UUID, feature string) ([]content.HistoryEntry, error)
	Delete(ctx context.Context, userID uuid.UUID, feature string, ts time.Time) error
}
