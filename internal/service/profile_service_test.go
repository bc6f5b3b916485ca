package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devdash/dev-dashboard/tests/testutil"
)

func TestProfileSeedsDefaults(t *testing.T) {
	svc := NewProfileService(testutil.NewTestStore(t), nil, "Juan Dela Cruz", "1992-04-14")
	ctx := context.Background()

	profile, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if profile.Name != "Juan Dela Cruz" {
		t.Errorf("name = %q", profile.Name)
	}
	if profile.Birthdate.Format("2006-01-02") != "1992-04-14" {
		t.Errorf("birthdate = %v", profile.Birthdate)
	}

	// The seed is persisted: a later read finds the saved record.
	again, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get (again): %v", err)
	}
	if again.Name != profile.Name || !again.Birthdate.Equal(profile.Birthdate) {
		t.Errorf("second read = %+v, want the seeded record", again)
	}
}

func TestProfileUpdate(t *testing.T) {
	svc := NewProfileService(testutil.NewTestStore(t), nil, "Juan Dela Cruz", "1992-04-14")
	ctx := context.Background()

	if _, err := svc.Update(ctx, "Ada", time.Time{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero birthdate: expected ErrValidation, got %v", err)
	}

	birth := time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, "Ada", birth)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Ada" || !updated.Birthdate.Equal(birth) {
		t.Errorf("updated = %+v", updated)
	}

	got, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Ada" {
		t.Errorf("defaults overwrote the saved profile: %q", got.Name)
	}
}
