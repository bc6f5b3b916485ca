package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/devdash/dev-dashboard/internal/model"
	"github.com/devdash/dev-dashboard/internal/notify"
	"github.com/devdash/dev-dashboard/internal/store"
)

// TodoService implements todo operations on top of the record store.
type TodoService struct {
	store *store.SQLiteStore
	hub   *notify.Hub
	now   func() time.Time
}

// NewTodoService creates a todo service.
func NewTodoService(s *store.SQLiteStore, hub *notify.Hub) *TodoService {
	return &TodoService{store: s, hub: hub, now: time.Now}
}

// TodoInput carries the user-editable fields of a todo.
type TodoInput struct {
	Title       string
	Description string
	Link        *string
	Priority    string
	Deadline    *time.Time
}

// Create validates the input and adds a new todo. The initial status
// is the chosen priority.
func (s *TodoService) Create(ctx context.Context, in TodoInput) (*model.Todo, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("todo title is required: %w", ErrValidation)
	}
	if !model.ValidPriority(in.Priority) {
		return nil, fmt.Errorf("invalid priority %q: %w", in.Priority, ErrValidation)
	}

	now := s.now().UTC()
	todo := model.Todo{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Link:        in.Link,
		Priority:    in.Priority,
		Status:      in.Priority,
		Deadline:    in.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.AddTodo(ctx, todo); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.Todos)
	return &todo, nil
}

// Update validates and replaces the user-editable fields of a todo,
// leaving tags and timer state untouched.
func (s *TodoService) Update(ctx context.Context, id string, in TodoInput) (*model.Todo, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("todo title is required: %w", ErrValidation)
	}
	if !model.ValidPriority(in.Priority) {
		return nil, fmt.Errorf("invalid priority %q: %w", in.Priority, ErrValidation)
	}

	todo, err := s.store.GetTodoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	todo.Title = in.Title
	todo.Description = in.Description
	todo.Link = in.Link
	todo.Priority = in.Priority
	todo.Status = in.Priority
	todo.Deadline = in.Deadline
	todo.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateTodo(ctx, *todo); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.Todos)
	return todo, nil
}

// SetStatus reassigns a todo's status. Any value may move to any
// other; priority is kept in sync with the new status.
func (s *TodoService) SetStatus(ctx context.Context, id, status string) (*model.Todo, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q: %w", status, ErrValidation)
	}

	todo, err := s.store.GetTodoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	todo.Status = status
	todo.Priority = status
	todo.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateTodo(ctx, *todo); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.Todos)
	return todo, nil
}

// Get retrieves a single todo by id.
func (s *TodoService) Get(ctx context.Context, id string) (*model.Todo, error) {
	return s.store.GetTodoByID(ctx, id)
}

// Delete removes a todo.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	if err := s.store.RemoveTodo(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(notify.Todos)
	return nil
}

// List returns all todos in display order.
func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	return s.Search(ctx, "", "")
}

// Search filters todos by a case-insensitive title substring and an
// optional exact tag membership, both optional. Empty parameters
// return the full set. Results are in display order: status rank
// first, ties broken by deadline ascending with absent deadlines last.
func (s *TodoService) Search(ctx context.Context, query, tagID string) ([]model.Todo, error) {
	todos, err := s.store.GetTodos(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	filtered := todos[:0]
	for _, t := range todos {
		if query != "" && !strings.Contains(strings.ToLower(t.Title), query) {
			continue
		}
		if tagID != "" && !t.HasTag(tagID) {
			continue
		}
		filtered = append(filtered, t)
	}

	sortTodos(filtered)
	return filtered, nil
}

// sortTodos orders todos for display.
func sortTodos(todos []model.Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		ri, rj := model.StatusRank(todos[i].Priority), model.StatusRank(todos[j].Priority)
		if ri != rj {
			return ri < rj
		}
		di, dj := todos[i].Deadline, todos[j].Deadline
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
}
