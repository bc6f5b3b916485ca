package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/devdash/dev-dashboard/internal/model"
	"github.com/devdash/dev-dashboard/internal/notify"
	"github.com/devdash/dev-dashboard/internal/store"
)

// TagService implements tag operations, including the referential
// cleanup the store deliberately does not do.
type TagService struct {
	store *store.SQLiteStore
	hub   *notify.Hub
	log   *zap.Logger
	now   func() time.Time
}

// NewTagService creates a tag service.
func NewTagService(s *store.SQLiteStore, hub *notify.Hub, log *zap.Logger) *TagService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TagService{store: s, hub: hub, log: log, now: time.Now}
}

// TagInput carries the user-editable fields of a tag.
type TagInput struct {
	Name        string
	Color       string
	Description string
}

// Create validates the input and adds a new tag. Name and color are
// required; the color may be any value, palette or not.
func (s *TagService) Create(ctx context.Context, in TagInput) (*model.Tag, error) {
	if err := validateTag(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	tag := model.Tag{
		ID:          newID(),
		Name:        in.Name,
		Color:       in.Color,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.AddTag(ctx, tag); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.Tags)
	return &tag, nil
}

// Update validates and replaces the editable fields of a tag.
func (s *TagService) Update(ctx context.Context, id string, in TagInput) (*model.Tag, error) {
	if err := validateTag(in); err != nil {
		return nil, err
	}

	tag, err := s.store.GetTagByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag.Name = in.Name
	tag.Color = in.Color
	tag.Description = in.Description
	tag.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateTag(ctx, *tag); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.Tags)
	return tag, nil
}

// List returns all tags, newest first.
func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.store.GetTags(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].CreatedAt.After(tags[j].CreatedAt)
	})
	return tags, nil
}

// Attach adds a tag to a todo's tag set. Attaching a tag that is
// already present changes nothing and reports ErrTagAttached.
func (s *TagService) Attach(ctx context.Context, todoID, tagID string) error {
	if _, err := s.store.GetTagByID(ctx, tagID); err != nil {
		return err
	}

	todo, err := s.store.GetTodoByID(ctx, todoID)
	if err != nil {
		return err
	}
	if todo.HasTag(tagID) {
		return fmt.Errorf("tag %s on todo %s: %w", tagID, todoID, ErrTagAttached)
	}

	todo.TagIDs = append(todo.TagIDs, tagID)
	todo.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateTodo(ctx, *todo); err != nil {
		return err
	}

	s.hub.Publish(notify.Todos)
	return nil
}

// Detach removes a tag from a todo's tag set. Detaching an absent tag
// is a no-op.
func (s *TagService) Detach(ctx context.Context, todoID, tagID string) error {
	todo, err := s.store.GetTodoByID(ctx, todoID)
	if err != nil {
		return err
	}
	if !todo.HasTag(tagID) {
		return nil
	}

	todo.TagIDs = slices.DeleteFunc(todo.TagIDs, func(id string) bool {
		return id == tagID
	})
	todo.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateTodo(ctx, *todo); err != nil {
		return err
	}

	s.hub.Publish(notify.Todos)
	return nil
}

// DeleteCascade removes the tag's id from every referencing todo and
// then deletes the tag itself. The cascade is best effort: each todo
// is rewritten in its own transaction, and a failure part way through
// aborts the rest, leaving earlier rewrites in place.
func (s *TagService) DeleteCascade(ctx context.Context, tagID string) error {
	todos, err := s.store.GetTodos(ctx)
	if err != nil {
		return err
	}

	for _, todo := range todos {
		if !todo.HasTag(tagID) {
			continue
		}
		todo.TagIDs = slices.DeleteFunc(todo.TagIDs, func(id string) bool {
			return id == tagID
		})
		todo.UpdatedAt = s.now().UTC()
		if err := s.store.UpdateTodo(ctx, todo); err != nil {
			s.log.Error("tag cascade interrupted",
				zap.String("tag_id", tagID),
				zap.String("todo_id", todo.ID),
				zap.Error(err))
			return fmt.Errorf("detaching tag %s from todo %s: %w", tagID, todo.ID, err)
		}
	}

	if err := s.store.RemoveTag(ctx, tagID); err != nil {
		return err
	}

	s.hub.Publish(notify.Tags)
	s.hub.Publish(notify.Todos)
	return nil
}

func validateTag(in TagInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("tag name is required: %w", ErrValidation)
	}
	if strings.TrimSpace(in.Color) == "" {
		return fmt.Errorf("tag color is required: %w", ErrValidation)
	}
	return nil
}
