package model

import (
	"slices"
	"time"
)

// Todo status values. Priority uses the first three; status adds DONE.
const (
	StatusUrgent  = "URGENT"
	StatusNormal  = "NORMAL"
	StatusPending = "PENDING"
	StatusDone    = "DONE"
)

// statusRanks orders statuses for display: urgent work first, done last.
var statusRanks = map[string]int{
	StatusUrgent:  0,
	StatusNormal:  1,
	StatusPending: 2,
	StatusDone:    3,
}

// StatusRank returns the display rank of a status. Unknown values sort last.
func StatusRank(status string) int {
	if r, ok := statusRanks[status]; ok {
		return r
	}
	return len(statusRanks)
}

// ValidStatus reports whether s is one of the four known status values.
func ValidStatus(s string) bool {
	_, ok := statusRanks[s]
	return ok
}

// ValidPriority reports whether p is a creation-time priority
// (any status except DONE).
func ValidPriority(p string) bool {
	return ValidStatus(p) && p != StatusDone
}

// Session is a closed working interval on a todo. Duration is computed
// once when the session closes and never recomputed.
type Session struct {
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Duration time.Duration `json:"duration"`
}

// Todo is a tracked task captured from a page or entered by hand.
// At most one session may be open at a time: ActiveStart is its start
// timestamp, nil when no session is running.
type Todo struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Link        *string    `json:"link,omitempty" db:"link"`
	Priority    string     `json:"priority" db:"priority"`
	Status      string     `json:"status" db:"status"`
	Deadline    *time.Time `json:"deadline,omitempty" db:"deadline"`
	TagIDs      []string   `json:"tag_ids,omitempty" db:"-"`
	ActiveStart *time.Time `json:"active_start,omitempty" db:"active_start"`
	Sessions    []Session  `json:"sessions,omitempty" db:"-"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// HasTag reports whether the todo references the given tag id.
func (t *Todo) HasTag(tagID string) bool {
	return slices.Contains(t.TagIDs, tagID)
}

// Overdue reports whether the deadline has passed and the todo is not done.
func (t *Todo) Overdue(now time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(now) && t.Status != StatusDone
}
