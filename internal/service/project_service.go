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

// ProjectService implements bookmark-project operations.
type ProjectService struct {
	store *store.SQLiteStore
	hub   *notify.Hub
	now   func() time.Time
}

// NewProjectService creates a project service.
func NewProjectService(s *store.SQLiteStore, hub *notify.Hub) *ProjectService {
	return &ProjectService{store: s, hub: hub, now: time.Now}
}

// Create validates and adds a new project. Title and link are required.
func (s *ProjectService) Create(ctx context.Context, title, link string) (*model.Project, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("project title is required: %w", ErrValidation)
	}
	if strings.TrimSpace(link) == "" {
		return nil, fmt.Errorf("project link is required: %w", ErrValidation)
	}

	now := s.now().UTC()
	project := model.Project{
		ID:        newID(),
		Title:     title,
		Link:      link,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.AddProject(ctx, project); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.Projects)
	return &project, nil
}

// List returns all projects in display order: most-clicked first,
// ties broken by most recently updated.
func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	projects, err := s.store.GetProjects(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].NoClick != projects[j].NoClick {
			return projects[i].NoClick > projects[j].NoClick
		}
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

// Open records a click on the project: the click counter grows by one
// and the updated timestamp refreshes, which together drive the
// display order.
func (s *ProjectService) Open(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.store.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.NoClick++
	project.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateProject(ctx, *project); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.Projects)
	return project, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.store.RemoveProject(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(notify.Projects)
	return nil
}
