package store

import (
	"context"
	"fmt"
	"time"

	"listinglab/internal/content"
	"listinglab/internal/sqlinline"

	"github.com/google/uuid"
)

// PGHistories is the Postgres-backed Histories implementation.
type PGHistories struct {
	DB Querier
}

// Append implements Histories.
func (s *PGHistories) Append(ctx context.Context, userID uuid.UUID, e *content.HistoryEntry) error {
	_, err := s.DB.Exec(ctx, sqlinline.QInsertHistoryEntry,
		userID, e.Feature, e.Timestamp, e.Heading, nullable(e.Category), e.SourceText, e.JobID, nullable(e.Caption))
	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

// List implements Histories. Entries come back newest first.
func (s *PGHistories) List(ctx context.Context, userID uuid.UUID, feature string) ([]content.HistoryEntry, error) {
	rows, err := s.DB.Query(ctx, sqlinline.QSelectHistoryEntries, userID, feature)
	if err != nil {
		return nil, fmt.Errorf("list history entries: %w", err)
	}
	defer rows.Close()

	var items []content.HistoryEntry
	for rows.Next() {
		var e content.HistoryEntry
		if err := rows.Scan(&e.Feature, &e.Heading, &e.Category, &e.SourceText, &e.Timestamp, &e.JobID, &e.Caption); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// Delete implements Histories, keyed on the entry's natural key.
func (s *PGHistories) Delete(ctx context.Context, userID uuid.UUID, feature string, ts time.Time) error {
	tag, err := s.DB.Exec(ctx, sqlinline.QDeleteHistoryEntry, userID, feature, ts)
	if err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete history entry: no entry at %s", ts.Format(time.RFC3339Nano))
	}
	return nil
}

var _ Histories = (*PGHistories)(nil)
