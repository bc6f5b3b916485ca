package timer

import (
	"context"
	"sync"
	"time"

	"github.com/devdash/dev-dashboard/internal/model"
)

// ReadStore is the read-only store slice the refresher needs.
type ReadStore interface {
	GetTodoByID(ctx context.Context, id string) (*model.Todo, error)
}

// Update is one recomputed elapsed-time reading for a watched todo.
type Update struct {
	TodoID  string
	Elapsed time.Duration
	// Started is false when the todo has never been timed; displays
	// show a zero-filled duration then.
	Started bool
	// Running reports whether a session is currently open.
	Running bool
}

// Refresher owns one periodic read loop per watched todo. Each tick
// re-reads the persisted todo and recomputes its accumulated duration.
// Loops are purely read-side: they never mutate timer state and so
// cannot race with Toggle writes.
type Refresher struct {
	store    ReadStore
	interval time.Duration
	now      func() time.Time
	updates  chan Update

	mu      sync.Mutex
	watches map[string]chan struct{}
}

// NewRefresher creates a refresher that re-reads each watched todo at
// the given interval.
func NewRefresher(s ReadStore, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Refresher{
		store:    s,
		interval: interval,
		now:      time.Now,
		updates:  make(chan Update, 64),
		watches:  make(map[string]chan struct{}),
	}
}

// Updates is the stream of elapsed-time readings. Sends are
// non-blocking; slow consumers miss ticks, not state.
func (r *Refresher) Updates() <-chan Update {
	return r.updates
}

// Watch starts a refresh loop for the todo, replacing any existing
// one. visible is polled on every tick; when it reports false the
// loop deregisters itself, so no timer outlives its display element.
func (r *Refresher) Watch(todoID string, visible func() bool) {
	stop := make(chan struct{})

	r.mu.Lock()
	if prev, ok := r.watches[todoID]; ok {
		close(prev)
	}
	r.watches[todoID] = stop
	r.mu.Unlock()

	go r.run(todoID, visible, stop)
}

// Unwatch cancels the refresh loop for the todo, if any.
func (r *Refresher) Unwatch(todoID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stop, ok := r.watches[todoID]; ok {
		close(stop)
		delete(r.watches, todoID)
	}
}

// Stop cancels every refresh loop.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, stop := range r.watches {
		close(stop)
		delete(r.watches, id)
	}
}

func (r *Refresher) run(todoID string, visible func() bool, stop chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if visible != nil && !visible() {
				r.drop(todoID, stop)
				return
			}
			if !r.tick(todoID) {
				r.drop(todoID, stop)
				return
			}
		}
	}
}

// tick reads the todo and emits one update. Returns false when the
// todo no longer exists and the loop should end.
func (r *Refresher) tick(todoID string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), r.interval)
	defer cancel()

	todo, err := r.store.GetTodoByID(ctx, todoID)
	if err != nil {
		return false
	}

	elapsed, started := AccumulatedDuration(todo, r.now())
	select {
	case r.updates <- Update{
		TodoID:  todoID,
		Elapsed: elapsed,
		Started: started,
		Running: todo.ActiveStart != nil,
	}:
	default:
	}
	return true
}

// drop deregisters the loop's own entry unless it was already replaced.
func (r *Refresher) drop(todoID string, stop chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.watches[todoID]; ok && cur == stop {
		delete(r.watches, todoID)
	}
}
