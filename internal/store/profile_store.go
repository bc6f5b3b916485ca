package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devdash/dev-dashboard/internal/model"
)

// GetProfile retrieves the singleton profile record.
// Returns ErrNotFound when no profile has been saved yet.
func (s *SQLiteStore) GetProfile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM profile WHERE id = ?", model.ProfileID).Scan(
		&p.ID, &p.Name, &p.Birthdate, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting profile: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return &p, nil
}

// SaveProfile inserts or replaces the singleton profile record.
// The profile always lives under the fixed id regardless of input.
func (s *SQLiteStore) SaveProfile(ctx context.Context, profile model.Profile) error {
	profile.ID = model.ProfileID

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO profile (id, name, birthdate, updated_at)
		VALUES (?, ?, ?, ?)`,
		profile.ID, profile.Name, profile.Birthdate, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// ClearProfile removes the profile record.
func (s *SQLiteStore) ClearProfile(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM profile"); err != nil {
		return fmt.Errorf("clearing profile: %w", err)
	}
	return nil
}
