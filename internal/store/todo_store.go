package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/devdash/dev-dashboard/internal/model"
)

// todoColumns is the explicit column list shared by all todo queries.
// Timing columns were added by a later schema version, so SELECT *
// ordering is not trusted here.
const todoColumns = `id, title, description, link, priority, status,
	deadline, tag_ids, active_start, sessions, created_at, updated_at`

// AddTodo inserts a new todo. Fails with ErrDuplicate if the id exists.
func (s *SQLiteStore) AddTodo(ctx context.Context, todo model.Todo) error {
	tagIDs, sessions, err := marshalTodoBlobs(todo)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO todos (
			id, title, description, link, priority, status,
			deadline, tag_ids, active_start, sessions, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Title, todo.Description, todo.Link, todo.Priority, todo.Status,
		todo.Deadline, tagIDs, todo.ActiveStart, sessions, todo.CreatedAt, todo.UpdatedAt,
	)
	if isConstraintErr(err) {
		return fmt.Errorf("adding todo %s: %w", todo.ID, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("adding todo %s: %w", todo.ID, err)
	}
	return nil
}

// AddTodos inserts a batch of todos inside a single transaction.
// Insert-only: any colliding identifier rolls the whole batch back.
func (s *SQLiteStore) AddTodos(ctx context.Context, todos []model.Todo) error {
	if len(todos) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO todos (
			id, title, description, link, priority, status,
			deadline, tag_ids, active_start, sessions, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing todo insert: %w", err)
	}
	defer stmt.Close()

	for _, todo := range todos {
		tagIDs, sessions, err := marshalTodoBlobs(todo)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx,
			todo.ID, todo.Title, todo.Description, todo.Link, todo.Priority, todo.Status,
			todo.Deadline, tagIDs, todo.ActiveStart, sessions, todo.CreatedAt, todo.UpdatedAt,
		)
		if isConstraintErr(err) {
			return fmt.Errorf("adding todo %s: %w", todo.ID, ErrDuplicate)
		}
		if err != nil {
			return fmt.Errorf("adding todo %s: %w", todo.ID, err)
		}
	}

	return tx.Commit()
}

// UpdateTodo replaces an existing todo record wholesale.
// Fails with ErrNotFound if the id is absent.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo model.Todo) error {
	tagIDs, sessions, err := marshalTodoBlobs(todo)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE todos SET
			title = ?, description = ?, link = ?, priority = ?, status = ?,
			deadline = ?, tag_ids = ?, active_start = ?, sessions = ?,
			created_at = ?, updated_at = ?
		WHERE id = ?`,
		todo.Title, todo.Description, todo.Link, todo.Priority, todo.Status,
		todo.Deadline, tagIDs, todo.ActiveStart, sessions,
		todo.CreatedAt, todo.UpdatedAt,
		todo.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo %s: %w", todo.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("updating todo %s: %w", todo.ID, ErrNotFound)
	}
	return nil
}

// RemoveTodo deletes a todo by id. Removing an absent id is a no-op.
func (s *SQLiteStore) RemoveTodo(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id); err != nil {
		return fmt.Errorf("removing todo %s: %w", id, err)
	}
	return nil
}

// ClearTodos removes every todo record.
func (s *SQLiteStore) ClearTodos(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todos"); err != nil {
		return fmt.Errorf("clearing todos: %w", err)
	}
	return nil
}

// GetTodoByID retrieves a single todo. Returns ErrNotFound when absent.
func (s *SQLiteStore) GetTodoByID(ctx context.Context, id string) (*model.Todo, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+todoColumns+" FROM todos WHERE id = ?", id)

	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting todo %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %s: %w", id, err)
	}
	return &todo, nil
}

// GetTodos retrieves all todos in no guaranteed order; callers sort.
func (s *SQLiteStore) GetTodos(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT "+todoColumns+" FROM todos")
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// marshalTodoBlobs encodes the todo's JSON columns.
func marshalTodoBlobs(todo model.Todo) (tagIDs, sessions string, err error) {
	ids := todo.TagIDs
	if ids == nil {
		ids = []string{}
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return "", "", fmt.Errorf("marshaling tag ids for todo %s: %w", todo.ID, err)
	}

	sess := todo.Sessions
	if sess == nil {
		sess = []model.Session{}
	}
	sessJSON, err := json.Marshal(sess)
	if err != nil {
		return "", "", fmt.Errorf("marshaling sessions for todo %s: %w", todo.ID, err)
	}

	return string(idsJSON), string(sessJSON), nil
}

// scanTodo scans a todo row from either a sqlx.Row or sqlx.Rows.
func scanTodo(row interface{ Scan(dest ...interface{}) error }) (model.Todo, error) {
	var (
		todo        model.Todo
		link        *string
		deadline    *time.Time
		activeStart *time.Time
		tagIDs      string
		sessions    string
	)

	err := row.Scan(
		&todo.ID, &todo.Title, &todo.Description, &link, &todo.Priority, &todo.Status,
		&deadline, &tagIDs, &activeStart, &sessions, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, err
		}
		return model.Todo{}, fmt.Errorf("scanning todo row: %w", err)
	}

	todo.Link = link
	todo.Deadline = deadline
	todo.ActiveStart = activeStart

	if err := json.Unmarshal([]byte(tagIDs), &todo.TagIDs); err != nil {
		return model.Todo{}, fmt.Errorf("unmarshaling tag ids: %w", err)
	}
	if err := json.Unmarshal([]byte(sessions), &todo.Sessions); err != nil {
		return model.Todo{}, fmt.Errorf("unmarshaling sessions: %w", err)
	}
	if len(todo.TagIDs) == 0 {
		todo.TagIDs = nil
	}
	if len(todo.Sessions) == 0 {
		todo.Sessions = nil
	}

	return todo, nil
}
