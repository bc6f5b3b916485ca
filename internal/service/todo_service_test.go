package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devdash/dev-dashboard/internal/model"
	"github.com/devdash/dev-dashboard/internal/store"
	"github.com/devdash/dev-dashboard/tests/testutil"
)

func newTodoService(t *testing.T) (*TodoService, *store.SQLiteStore) {
	t.Helper()

	s := testutil.NewTestStore(t)
	svc := NewTodoService(s, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, s
}

func TestCreateTodo(t *testing.T) {
	svc, _ := newTodoService(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, TodoInput{Title: "Write report", Priority: model.StatusUrgent})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if todo.ID == "" {
		t.Error("expected generated id")
	}
	if todo.Status != model.StatusUrgent {
		t.Errorf("status = %q, want initial status to match priority", todo.Status)
	}

	got, err := svc.Get(ctx, todo.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Write report" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestCreateTodoValidation(t *testing.T) {
	svc, _ := newTodoService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, TodoInput{Title: "   ", Priority: model.StatusNormal}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank title: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Create(ctx, TodoInput{Title: "x", Priority: "CRITICAL"}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown priority: expected ErrValidation, got %v", err)
	}
	// DONE is a status, never a creation priority.
	if _, err := svc.Create(ctx, TodoInput{Title: "x", Priority: model.StatusDone}); !errors.Is(err, ErrValidation) {
		t.Errorf("DONE priority: expected ErrValidation, got %v", err)
	}
}

func TestSetStatusSyncsPriority(t *testing.T) {
	svc, _ := newTodoService(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, TodoInput{Title: "Ship it", Priority: model.StatusNormal})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.SetStatus(ctx, todo.ID, model.StatusDone)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != model.StatusDone || updated.Priority != model.StatusDone {
		t.Errorf("status=%q priority=%q, want both DONE", updated.Status, updated.Priority)
	}

	// DONE is not terminal; any status may move to any other.
	updated, err = svc.SetStatus(ctx, todo.ID, model.StatusUrgent)
	if err != nil {
		t.Fatalf("SetStatus (reopen): %v", err)
	}
	if updated.Status != model.StatusUrgent || updated.Priority != model.StatusUrgent {
		t.Errorf("status=%q priority=%q, want both URGENT", updated.Status, updated.Priority)
	}

	if _, err := svc.SetStatus(ctx, todo.ID, "SOMEDAY"); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown status: expected ErrValidation, got %v", err)
	}
}

func TestUpdateTodoPreservesTagsAndTimer(t *testing.T) {
	svc, s := newTodoService(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, TodoInput{Title: "Original", Priority: model.StatusNormal})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Attach state the edit form never touches.
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	stored, _ := s.GetTodoByID(ctx, todo.ID)
	stored.TagIDs = []string{"tag-1"}
	stored.ActiveStart = &start
	if err := s.UpdateTodo(ctx, *stored); err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}

	updated, err := svc.Update(ctx, todo.ID, TodoInput{Title: "Edited", Priority: model.StatusUrgent})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Edited" {
		t.Errorf("title = %q", updated.Title)
	}
	if !updated.HasTag("tag-1") {
		t.Errorf("edit dropped tags: %v", updated.TagIDs)
	}
	if updated.ActiveStart == nil {
		t.Error("edit dropped the open session")
	}
}

func TestSearchFiltersAndSorts(t *testing.T) {
	svc, s := newTodoService(t)
	ctx := context.Background()

	soon := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	seed := []struct {
		title    string
		priority string
		deadline *time.Time
		tags     []string
	}{
		{"Quarterly report", model.StatusPending, nil, nil},
		{"Fix login bug", model.StatusUrgent, &later, []string{"tag-bug"}},
		{"Report outage", model.StatusUrgent, &soon, nil},
		{"Groceries", model.StatusNormal, nil, nil},
	}
	for _, sd := range seed {
		todo, err := svc.Create(ctx, TodoInput{Title: sd.title, Priority: sd.priority, Deadline: sd.deadline})
		if err != nil {
			t.Fatalf("Create %q: %v", sd.title, err)
		}
		if sd.tags != nil {
			stored, _ := s.GetTodoByID(ctx, todo.ID)
			stored.TagIDs = sd.tags
			if err := s.UpdateTodo(ctx, *stored); err != nil {
				t.Fatalf("UpdateTodo: %v", err)
			}
		}
	}

	t.Run("DisplayOrder", func(t *testing.T) {
		todos, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		got := make([]string, len(todos))
		for i, td := range todos {
			got[i] = td.Title
		}
		// Urgent first with the nearer deadline leading, pending last.
		want := []string{"Report outage", "Fix login bug", "Groceries", "Quarterly report"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("order = %v, want %v", got, want)
			}
		}
	})

	t.Run("CaseInsensitiveQuery", func(t *testing.T) {
		todos, err := svc.Search(ctx, "report", "")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(todos) != 2 {
			t.Fatalf("matched %d todos, want 2", len(todos))
		}
	})

	t.Run("TagFilter", func(t *testing.T) {
		todos, err := svc.Search(ctx, "", "tag-bug")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(todos) != 1 || todos[0].Title != "Fix login bug" {
			t.Fatalf("tag filter matched %v", todos)
		}
	})

	t.Run("QueryAndTag", func(t *testing.T) {
		todos, err := svc.Search(ctx, "report", "tag-bug")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(todos) != 0 {
			t.Fatalf("conjunction matched %v", todos)
		}
	})
}

func TestDeleteTodo(t *testing.T) {
	svc, _ := newTodoService(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, TodoInput{Title: "short-lived", Priority: model.StatusNormal})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, todo.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, todo.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// Deleting again is a no-op.
	if err := svc.Delete(ctx, todo.ID); err != nil {
		t.Fatalf("Delete (absent): %v", err)
	}
}
