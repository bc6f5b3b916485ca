package migrate

import (
	"time"

	"github.com/devdash/dev-dashboard/internal/model"
)

// Legacy records carry timestamps as ISO-8601 strings and timer state
// in one of two historical shapes. Both shapes are decoded here and
// normalized to the canonical form exactly once, at import time; no
// runtime code ever branches on the legacy representation.

// legacySession is a closed session with a millisecond duration
// precomputed by the old implementation.
type legacySession struct {
	Start    int64 `json:"start"`
	End      int64 `json:"end"`
	Duration int64 `json:"duration"`
}

type legacyTodo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        *string  `json:"link"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	Deadline    *string  `json:"deadline"`
	TagIDs      []string `json:"tagIds"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`

	// Older shape: start/stop pairs in epoch milliseconds. A pair
	// without a stop marks the session still open.
	Intervals [][]int64 `json:"intervals"`

	// Newer shape: nullable open-session start plus closed history.
	ActiveStart *int64          `json:"activeStart"`
	Sessions    []legacySession `json:"sessions"`
}

type legacyProject struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	NoClick int    `json:"noClick"`
	Created string `json:"created"`
	Updated string `json:"updated"`
}

type legacyTag struct {
	ID          string `json:"id"`
	Name        string `json:"tagName"`
	Color       string `json:"tagColor"`
	Description string `json:"tagDescription"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type legacyProfile struct {
	Name      string `json:"name"`
	UserName  string `json:"userName"`
	Birthdate string `json:"birthdate"`
}

func (lt legacyTodo) canonical() model.Todo {
	todo := model.Todo{
		ID:          lt.ID,
		Title:       lt.Title,
		Description: lt.Description,
		Link:        lt.Link,
		Priority:    lt.Priority,
		Status:      lt.Status,
		TagIDs:      lt.TagIDs,
		CreatedAt:   parseISO(lt.CreatedAt),
		UpdatedAt:   parseISO(lt.UpdatedAt),
	}
	if todo.Status == "" {
		todo.Status = todo.Priority
	}
	if todo.UpdatedAt.IsZero() {
		todo.UpdatedAt = todo.CreatedAt
	}
	if lt.Deadline != nil {
		if d, err := time.Parse(time.RFC3339, *lt.Deadline); err == nil {
			todo.Deadline = &d
		}
	}

	todo.ActiveStart, todo.Sessions = lt.timing()
	return todo
}

// timing resolves the two historical timer shapes into the canonical
// one. The newer shape wins when both are present.
func (lt legacyTodo) timing() (*time.Time, []model.Session) {
	if lt.ActiveStart != nil || len(lt.Sessions) > 0 {
		var open *time.Time
		if lt.ActiveStart != nil {
			t := msToTime(*lt.ActiveStart)
			open = &t
		}
		var sessions []model.Session
		for _, s := range lt.Sessions {
			sessions = append(sessions, model.Session{
				Start:    msToTime(s.Start),
				End:      msToTime(s.End),
				Duration: time.Duration(s.Duration) * time.Millisecond,
			})
		}
		return open, sessions
	}

	var open *time.Time
	var sessions []model.Session
	for _, pair := range lt.Intervals {
		if len(pair) == 0 {
			continue
		}
		start := msToTime(pair[0])
		if len(pair) < 2 || pair[1] == 0 {
			// Unclosed pair: becomes the open session.
			open = &start
			continue
		}
		end := msToTime(pair[1])
		sessions = append(sessions, model.Session{
			Start:    start,
			End:      end,
			Duration: end.Sub(start),
		})
	}
	return open, sessions
}

func (lp legacyProject) canonical() model.Project {
	p := model.Project{
		ID:        lp.ID,
		Title:     lp.Title,
		Link:      lp.Link,
		NoClick:   lp.NoClick,
		CreatedAt: parseISO(lp.Created),
		UpdatedAt: parseISO(lp.Updated),
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	return p
}

func (lt legacyTag) canonical() model.Tag {
	t := model.Tag{
		ID:          lt.ID,
		Name:        lt.Name,
		Color:       lt.Color,
		Description: lt.Description,
		CreatedAt:   parseISO(lt.CreatedAt),
		UpdatedAt:   parseISO(lt.UpdatedAt),
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	return t
}

func (lp legacyProfile) canonical() model.Profile {
	name := lp.Name
	if name == "" {
		name = lp.UserName
	}
	birth, err := time.Parse("2006-01-02", lp.Birthdate)
	if err != nil {
		birth = parseISO(lp.Birthdate)
	}
	return model.Profile{
		ID:        model.ProfileID,
		Name:      name,
		Birthdate: birth,
		UpdatedAt: time.Now().UTC(),
	}
}

func parseISO(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
