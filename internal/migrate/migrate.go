// Package migrate performs the one-time transfer of records from the
// legacy flat store into the SQLite record store. It runs at startup,
// gated by a completion flag, and is additive: the legacy copy is
// never deleted, only flagged as absorbed.
package migrate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/devdash/dev-dashboard/internal/flatstore"
	"github.com/devdash/dev-dashboard/internal/model"
	"github.com/devdash/dev-dashboard/internal/store"
)

// CompleteKey is the flat-store key of the migration completion flag.
const CompleteKey = "migrationComplete"

// Engine copies legacy records into the record store.
type Engine struct {
	flat  *flatstore.Store
	store *store.SQLiteStore
	log   *zap.Logger
}

// New creates a migration engine.
func New(flat *flatstore.Store, s *store.SQLiteStore, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{flat: flat, store: s, log: log}
}

// Run migrates every known collection from the legacy blob, then sets
// the completion flag. When the flag is already set it does nothing.
//
// Each collection is inserted in one transaction via insert-only batch
// adds, so records colliding with existing identifiers fail the batch
// instead of silently overwriting. On any failure the flag stays
// unset and the next startup retries the whole migration; a partially
// completed prior run then fails on the already-migrated subset.
func (e *Engine) Run(ctx context.Context) error {
	done, err := e.flat.GetBool(CompleteKey)
	if err != nil {
		return fmt.Errorf("reading migration flag: %w", err)
	}
	if done {
		return nil
	}

	if err := e.migrateTodos(ctx); err != nil {
		return err
	}
	if err := e.migrateProjects(ctx); err != nil {
		return err
	}
	if err := e.migrateTags(ctx); err != nil {
		return err
	}
	if err := e.migrateProfile(ctx); err != nil {
		return err
	}

	if err := e.flat.Set(CompleteKey, true); err != nil {
		return fmt.Errorf("setting migration flag: %w", err)
	}

	e.log.Info("legacy store migration complete")
	return nil
}

func (e *Engine) migrateTodos(ctx context.Context) error {
	var legacy []legacyTodo
	ok, err := e.flat.Get("todos", &legacy)
	if err != nil {
		return fmt.Errorf("reading legacy todos: %w", err)
	}
	if !ok || len(legacy) == 0 {
		return nil
	}

	todos := make([]model.Todo, 0, len(legacy))
	for _, lt := range legacy {
		todos = append(todos, lt.canonical())
	}
	if err := e.store.AddTodos(ctx, todos); err != nil {
		return fmt.Errorf("migrating todos: %w", err)
	}

	e.log.Info("migrated legacy todos", zap.Int("count", len(todos)))
	return nil
}

func (e *Engine) migrateProjects(ctx context.Context) error {
	var legacy []legacyProject
	ok, err := e.flat.Get("projects", &legacy)
	if err != nil {
		return fmt.Errorf("reading legacy projects: %w", err)
	}
	if !ok || len(legacy) == 0 {
		return nil
	}

	projects := make([]model.Project, 0, len(legacy))
	for _, lp := range legacy {
		projects = append(projects, lp.canonical())
	}
	if err := e.store.AddProjects(ctx, projects); err != nil {
		return fmt.Errorf("migrating projects: %w", err)
	}

	e.log.Info("migrated legacy projects", zap.Int("count", len(projects)))
	return nil
}

func (e *Engine) migrateTags(ctx context.Context) error {
	var legacy []legacyTag
	ok, err := e.flat.Get("tags", &legacy)
	if err != nil {
		return fmt.Errorf("reading legacy tags: %w", err)
	}
	if !ok || len(legacy) == 0 {
		return nil
	}

	tags := make([]model.Tag, 0, len(legacy))
	for _, lt := range legacy {
		tags = append(tags, lt.canonical())
	}
	if err := e.store.AddTags(ctx, tags); err != nil {
		return fmt.Errorf("migrating tags: %w", err)
	}

	e.log.Info("migrated legacy tags", zap.Int("count", len(tags)))
	return nil
}

func (e *Engine) migrateProfile(ctx context.Context) error {
	var legacy legacyProfile
	ok, err := e.flat.Get("profile", &legacy)
	if err != nil {
		return fmt.Errorf("reading legacy profile: %w", err)
	}
	if !ok {
		return nil
	}

	if err := e.store.SaveProfile(ctx, legacy.canonical()); err != nil {
		return fmt.Errorf("migrating profile: %w", err)
	}

	e.log.Info("migrated legacy profile")
	return nil
}
