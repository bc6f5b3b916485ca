package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devdash/dev-dashboard/internal/model"
)

// AddProject inserts a new project. Fails with ErrDuplicate if the id exists.
func (s *SQLiteStore) AddProject(ctx context.Context, project model.Project) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, link, no_click, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		project.ID, project.Title, project.Link, project.NoClick,
		project.CreatedAt, project.UpdatedAt,
	)
	if isConstraintErr(err) {
		return fmt.Errorf("adding project %s: %w", project.ID, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("adding project %s: %w", project.ID, err)
	}
	return nil
}

// AddProjects inserts a batch of projects inside a single transaction.
func (s *SQLiteStore) AddProjects(ctx context.Context, projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO projects (id, title, link, no_click, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing project insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range projects {
		_, err := stmt.ExecContext(ctx,
			p.ID, p.Title, p.Link, p.NoClick, p.CreatedAt, p.UpdatedAt)
		if isConstraintErr(err) {
			return fmt.Errorf("adding project %s: %w", p.ID, ErrDuplicate)
		}
		if err != nil {
			return fmt.Errorf("adding project %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// UpdateProject replaces an existing project record wholesale.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project model.Project) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE projects SET
			title = ?, link = ?, no_click = ?, created_at = ?, updated_at = ?
		WHERE id = ?`,
		project.Title, project.Link, project.NoClick,
		project.CreatedAt, project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", project.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("updating project %s: %w", project.ID, ErrNotFound)
	}
	return nil
}

// RemoveProject deletes a project by id. Removing an absent id is a no-op.
func (s *SQLiteStore) RemoveProject(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return fmt.Errorf("removing project %s: %w", id, err)
	}
	return nil
}

// ClearProjects removes every project record.
func (s *SQLiteStore) ClearProjects(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return fmt.Errorf("clearing projects: %w", err)
	}
	return nil
}

// GetProjectByID retrieves a single project. Returns ErrNotFound when absent.
func (s *SQLiteStore) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM projects WHERE id = ?", id).Scan(
		&p.ID, &p.Title, &p.Link, &p.NoClick, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return &p, nil
}

// GetProjects retrieves all projects in no guaranteed order; callers sort.
func (s *SQLiteStore) GetProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM projects")
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		err := rows.Scan(&p.ID, &p.Title, &p.Link, &p.NoClick, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
