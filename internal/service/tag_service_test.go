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

func newTagService(t *testing.T) (*TagService, *TodoService, *store.SQLiteStore) {
	t.Helper()

	s := testutil.NewTestStore(t)
	tags := NewTagService(s, nil, nil)
	todos := NewTodoService(s, nil)
	return tags, todos, s
}

func TestCreateTagValidation(t *testing.T) {
	svc, _, _ := newTagService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, TagInput{Name: "", Color: "#fff"}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Create(ctx, TagInput{Name: "bug", Color: " "}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank color: expected ErrValidation, got %v", err)
	}

	tag, err := svc.Create(ctx, TagInput{Name: "bug", Color: "#EF4444", Description: "defects"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tag.ID == "" {
		t.Error("expected generated id")
	}
}

func TestListTagsNewestFirst(t *testing.T) {
	svc, _, _ := newTagService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"oldest", "middle", "newest"} {
		stamp := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return stamp }
		if _, err := svc.Create(ctx, TagInput{Name: name, Color: "#fff"}); err != nil {
			t.Fatalf("Create %q: %v", name, err)
		}
	}

	tags, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tags) != 3 || tags[0].Name != "newest" || tags[2].Name != "oldest" {
		got := make([]string, len(tags))
		for i, tg := range tags {
			got[i] = tg.Name
		}
		t.Errorf("order = %v, want newest first", got)
	}
}

func TestAttachDetach(t *testing.T) {
	tagSvc, todoSvc, _ := newTagService(t)
	ctx := context.Background()

	todo, err := todoSvc.Create(ctx, TodoInput{Title: "tagged", Priority: model.StatusNormal})
	if err != nil {
		t.Fatalf("Create todo: %v", err)
	}
	tag, err := tagSvc.Create(ctx, TagInput{Name: "bug", Color: "#EF4444"})
	if err != nil {
		t.Fatalf("Create tag: %v", err)
	}

	if err := tagSvc.Attach(ctx, todo.ID, tag.ID); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := tagSvc.Attach(ctx, todo.ID, tag.ID); !errors.Is(err, ErrTagAttached) {
		t.Fatalf("double attach: expected ErrTagAttached, got %v", err)
	}

	// Attaching a nonexistent tag fails rather than storing a dangling id.
	if err := tagSvc.Attach(ctx, todo.ID, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("ghost tag: expected ErrNotFound, got %v", err)
	}

	got, err := todoSvc.Get(ctx, todo.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.TagIDs) != 1 {
		t.Fatalf("tag ids = %v", got.TagIDs)
	}

	if err := tagSvc.Detach(ctx, todo.ID, tag.ID); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	// Detaching an absent tag is a no-op.
	if err := tagSvc.Detach(ctx, todo.ID, tag.ID); err != nil {
		t.Fatalf("Detach (absent): %v", err)
	}

	got, err = todoSvc.Get(ctx, todo.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.TagIDs) != 0 {
		t.Fatalf("tag ids after detach = %v", got.TagIDs)
	}
}

func TestDeleteCascade(t *testing.T) {
	tagSvc, todoSvc, _ := newTagService(t)
	ctx := context.Background()

	tag, err := tagSvc.Create(ctx, TagInput{Name: "doomed", Color: "#000"})
	if err != nil {
		t.Fatalf("Create tag: %v", err)
	}
	keep, err := tagSvc.Create(ctx, TagInput{Name: "kept", Color: "#fff"})
	if err != nil {
		t.Fatalf("Create tag: %v", err)
	}

	a, err := todoSvc.Create(ctx, TodoInput{Title: "first", Priority: model.StatusNormal})
	if err != nil {
		t.Fatalf("Create todo: %v", err)
	}
	b, err := todoSvc.Create(ctx, TodoInput{Title: "second", Priority: model.StatusNormal})
	if err != nil {
		t.Fatalf("Create todo: %v", err)
	}
	for _, todoID := range []string{a.ID, b.ID} {
		if err := tagSvc.Attach(ctx, todoID, tag.ID); err != nil {
			t.Fatalf("Attach: %v", err)
		}
	}
	if err := tagSvc.Attach(ctx, a.ID, keep.ID); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	if err := tagSvc.DeleteCascade(ctx, tag.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	for _, todoID := range []string{a.ID, b.ID} {
		got, err := todoSvc.Get(ctx, todoID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.HasTag(tag.ID) {
			t.Errorf("todo %s still references deleted tag", todoID)
		}
	}

	// The unrelated attachment survives.
	got, err := todoSvc.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.HasTag(keep.ID) {
		t.Errorf("cascade removed an unrelated tag: %v", got.TagIDs)
	}

	tags, err := tagSvc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != keep.ID {
		t.Errorf("tags after cascade = %v", tags)
	}
}
