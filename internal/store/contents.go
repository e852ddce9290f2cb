package store

import (
	"context"
	"fmt"

	"listinglab/internal/content"
	"listinglab/internal/sqlinline"

	"github.com/google/uuid"
)

// PGContents is the Postgres-backed Contents implementation.
type PGContents struct {
	DB Querier
}

// PutDetail implements Contents.
func (s *PGContents) PutDetail(ctx context.Context, d *ContentDetail) error {
	_, err := s.DB.Exec(ctx, sqlinline.QInsertContentDetail,
		d.ID, d.UserID, string(d.Kind), d.AssetURLs, nullable(d.ArchiveURL), nullable(d.Caption), d.RawPayload)
	if err != nil {
		return fmt.Errorf("put content detail: %w", err)
	}
	return nil
}

// PutSummary implements Contents.
func (s *PGContents) PutSummary(ctx context.Context, sum *ContentSummary) error {
	_, err := s.DB.Exec(ctx, sqlinline.QInsertContentSummary,
		sum.ContentID, sum.UserID, string(sum.Kind), sum.Headline, nullable(sum.PreviewURL))
	if err != nil {
		return fmt.Errorf("put content summary: %w", err)
	}
	return nil
}

// DetailByID implements Contents.
func (s *PGContents) DetailByID(ctx context.Context, id, userID uuid.UUID) (*ContentDetail, error) {
	row := s.DB.QueryRow(ctx, sqlinline.QSelectContentDetail, id, userID)
	var d ContentDetail
	var kind string
	if err := row.Scan(&d.ID, &d.UserID, &kind, &d.AssetURLs, &d.ArchiveURL, &d.Caption, &d.RawPayload, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.Kind = kindFromString(kind)
	return &d, nil
}

// SummariesByUser implements Contents.
func (s *PGContents) SummariesByUser(ctx context.Context, userID uuid.UUID) ([]ContentSummary, error) {
	rows, err := s.DB.Query(ctx, sqlinline.QSelectContentSummaries, userID)
	if err != nil {
		return nil, fmt.Errorf("list content summaries: %w", err)
	}
	defer rows.Close()

	var items []ContentSummary
	for rows.Next() {
		var sum ContentSummary
		var kind string
		if err := rows.Scan(&sum.ContentID, &sum.UserID, &kind, &sum.Headline, &sum.PreviewURL, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan content summary: %w", err)
		}
		sum.Kind = kindFromString(kind)
		items = append(items, sum)
	}
	return items, rows.Err()
}

func kindFromString(s string) content.Kind {
	return content.Kind(s)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Contents = (*PGContents)(nil)
