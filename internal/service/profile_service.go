package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devdash/dev-dashboard/internal/model"
	"github.com/devdash/dev-dashboard/internal/notify"
	"github.com/devdash/dev-dashboard/internal/store"
)

// ProfileService reads and edits the singleton profile record.
type ProfileService struct {
	store *store.SQLiteStore
	hub   *notify.Hub
	now   func() time.Time

	defaultName      string
	defaultBirthdate string
}

// NewProfileService creates a profile service. The defaults seed the
// profile the first time it is read.
func NewProfileService(s *store.SQLiteStore, hub *notify.Hub, defaultName, defaultBirthdate string) *ProfileService {
	return &ProfileService{
		store:            s,
		hub:              hub,
		now:              time.Now,
		defaultName:      defaultName,
		defaultBirthdate: defaultBirthdate,
	}
}

// Get returns the profile, seeding the configured defaults when none
// has been saved yet.
func (s *ProfileService) Get(ctx context.Context) (*model.Profile, error) {
	profile, err := s.store.GetProfile(ctx)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	birth, perr := time.Parse("2006-01-02", s.defaultBirthdate)
	if perr != nil {
		return nil, fmt.Errorf("invalid default birthdate %q: %w", s.defaultBirthdate, perr)
	}

	seeded := model.Profile{
		ID:        model.ProfileID,
		Name:      s.defaultName,
		Birthdate: birth,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.SaveProfile(ctx, seeded); err != nil {
		return nil, err
	}
	return &seeded, nil
}

// Update replaces the profile's name and birthdate.
func (s *ProfileService) Update(ctx context.Context, name string, birthdate time.Time) (*model.Profile, error) {
	if birthdate.IsZero() {
		return nil, fmt.Errorf("birthdate is required: %w", ErrValidation)
	}

	profile := model.Profile{
		ID:        model.ProfileID,
		Name:      name,
		Birthdate: birthdate,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.Profile)
	return &profile, nil
}
