// Package timer maintains per-task start/stop state and computes
// accumulated working durations.
package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/devdash/dev-dashboard/internal/model"
	"github.com/devdash/dev-dashboard/internal/notify"
)

// Store is the slice of the record store the timer engine needs.
type Store interface {
	GetTodoByID(ctx context.Context, id string) (*model.Todo, error)
	UpdateTodo(ctx context.Context, todo model.Todo) error
}

// Engine toggles task timers and persists the resulting state.
type Engine struct {
	store Store
	hub   *notify.Hub

	// Now is the clock used for session boundaries. Tests replace it.
	Now func() time.Time
}

// NewEngine creates a timer engine over the given store.
func NewEngine(s Store, hub *notify.Hub) *Engine {
	return &Engine{store: s, hub: hub, Now: time.Now}
}

// Toggle flips the timer state of a todo. With no open session it
// records the open-session start; with one it closes the session,
// fixing its duration at close time. Exactly one branch runs per call,
// chosen solely by whether a start timestamp is present.
func (e *Engine) Toggle(ctx context.Context, todoID string) (*model.Todo, error) {
	todo, err := e.store.GetTodoByID(ctx, todoID)
	if err != nil {
		return nil, err
	}

	now := e.Now().UTC()
	if todo.ActiveStart == nil {
		todo.ActiveStart = &now
	} else {
		start := *todo.ActiveStart
		todo.Sessions = append(todo.Sessions, model.Session{
			Start:    start,
			End:      now,
			Duration: now.Sub(start),
		})
		todo.ActiveStart = nil
	}
	todo.UpdatedAt = now

	if err := e.store.UpdateTodo(ctx, *todo); err != nil {
		return nil, fmt.Errorf("persisting timer state for todo %s: %w", todoID, err)
	}

	e.hub.Publish(notify.Todos)
	return todo, nil
}

// Elapsed returns the todo's accumulated duration as of the engine's clock.
func (e *Engine) Elapsed(todo *model.Todo) (time.Duration, bool) {
	return AccumulatedDuration(todo, e.Now())
}

// AccumulatedDuration sums all closed-session durations plus, when a
// session is open, the time elapsed since its start. The boolean is
// false when the todo was never started, which is distinct from a
// zero total; callers render a zero-filled duration in that case.
//
// Closed durations were fixed at close time and are never recomputed,
// so only an open session makes the result depend on now.
func AccumulatedDuration(todo *model.Todo, now time.Time) (time.Duration, bool) {
	if len(todo.Sessions) == 0 && todo.ActiveStart == nil {
		return 0, false
	}

	var total time.Duration
	for _, s := range todo.Sessions {
		total += s.Duration
	}
	if todo.ActiveStart != nil {
		total += now.Sub(*todo.ActiveStart)
	}
	return total, true
}
