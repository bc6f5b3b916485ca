package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devdash/dev-dashboard/tests/testutil"
)

func newProjectService(t *testing.T) *ProjectService {
	t.Helper()

	svc := NewProjectService(testutil.NewTestStore(t), nil)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCreateProjectValidation(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", "https://example.com"); !errors.Is(err, ErrValidation) {
		t.Errorf("blank title: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Create(ctx, "dashboard", "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank link: expected ErrValidation, got %v", err)
	}
}

func TestOpenDrivesDisplayOrder(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "first", "https://example.com/first")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, "second", "https://example.com/second")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Three clicks on the second project, one on the first.
	for i := 0; i < 3; i++ {
		if _, err := svc.Open(ctx, second.ID); err != nil {
			t.Fatalf("Open: %v", err)
		}
	}
	opened, err := svc.Open(ctx, first.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opened.NoClick != 1 {
		t.Errorf("no_click = %d, want 1", opened.NoClick)
	}

	projects, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects", len(projects))
	}
	if projects[0].ID != second.ID || projects[0].NoClick != 3 {
		t.Errorf("most-clicked project should lead: %+v", projects[0])
	}
}

func TestListTiesBreakOnUpdated(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return base }
	if _, err := svc.Create(ctx, "stale", "https://example.com/stale"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	svc.now = func() time.Time { return base.Add(time.Hour) }
	if _, err := svc.Create(ctx, "fresh", "https://example.com/fresh"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	projects, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// Equal click counts: the more recently updated project leads.
	if projects[0].Title != "fresh" {
		t.Errorf("order = [%s, %s], want fresh first", projects[0].Title, projects[1].Title)
	}
}

func TestDeleteProject(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, "doomed", "https://example.com/doomed")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, project.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	projects, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("projects after delete = %v", projects)
	}
}
