package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devdash/dev-dashboard/internal/model"
)

// AddTag inserts a new tag. Fails with ErrDuplicate if the id exists.
func (s *SQLiteStore) AddTag(ctx context.Context, tag model.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, color, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tag.ID, tag.Name, tag.Color, tag.Description, tag.CreatedAt, tag.UpdatedAt,
	)
	if isConstraintErr(err) {
		return fmt.Errorf("adding tag %s: %w", tag.ID, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("adding tag %s: %w", tag.ID, err)
	}
	return nil
}

// AddTags inserts a batch of tags inside a single transaction.
func (s *SQLiteStore) AddTags(ctx context.Context, tags []model.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO tags (id, name, color, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing tag insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tags {
		_, err := stmt.ExecContext(ctx,
			t.ID, t.Name, t.Color, t.Description, t.CreatedAt, t.UpdatedAt)
		if isConstraintErr(err) {
			return fmt.Errorf("adding tag %s: %w", t.ID, ErrDuplicate)
		}
		if err != nil {
			return fmt.Errorf("adding tag %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// UpdateTag replaces an existing tag record wholesale.
func (s *SQLiteStore) UpdateTag(ctx context.Context, tag model.Tag) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tags SET
			name = ?, color = ?, description = ?, created_at = ?, updated_at = ?
		WHERE id = ?`,
		tag.Name, tag.Color, tag.Description, tag.CreatedAt, tag.UpdatedAt,
		tag.ID,
	)
	if err != nil {
		return fmt.Errorf("updating tag %s: %w", tag.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("updating tag %s: %w", tag.ID, ErrNotFound)
	}
	return nil
}

// RemoveTag deletes a tag by id. Removing an absent id is a no-op.
// Referential cleanup across todos is the tag service's job.
func (s *SQLiteStore) RemoveTag(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id); err != nil {
		return fmt.Errorf("removing tag %s: %w", id, err)
	}
	return nil
}

// ClearTags removes every tag record.
func (s *SQLiteStore) ClearTags(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tags"); err != nil {
		return fmt.Errorf("clearing tags: %w", err)
	}
	return nil
}

// GetTagByID retrieves a single tag. Returns ErrNotFound when absent.
func (s *SQLiteStore) GetTagByID(ctx context.Context, id string) (*model.Tag, error) {
	var t model.Tag
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM tags WHERE id = ?", id).Scan(
		&t.ID, &t.Name, &t.Color, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting tag %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag %s: %w", id, err)
	}
	return &t, nil
}

// GetTags retrieves all tags in no guaranteed order; callers sort.
func (s *SQLiteStore) GetTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM tags")
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Description, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
