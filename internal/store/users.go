package store

import (
	"context"
	"fmt"

	"listinglab/internal/sqlinline"

	"github.com/google/uuid"
)

// PGUsers is the Postgres-backed Users implementation.
type PGUsers struct {
	DB Querier
}

// BySessionToken implements Users.
func (s *PGUsers) BySessionToken(ctx context.Context, token string) (*User, error) {
	row := s.DB.QueryRow(ctx, sqlinline.QSelectUserBySessionToken, token)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Locale, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// AppendContentID implements Users.
func (s *PGUsers) AppendContentID(ctx context.Context, userID, contentID uuid.UUID) error {
	tag, err := s.DB.Exec(ctx, sqlinline.QAppendUserContentID, userID, contentID)
	if err != nil {
		return fmt.Errorf("append content id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("append content id: user %s not found", userID)
	}
	return nil
}

var _ Users = (*PGUsers)(nil)
