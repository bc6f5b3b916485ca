package model

import "time"

// Project is a saved bookmark-like link. NoClick counts how often the
// link was opened and only ever grows.
type Project struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Link      string    `json:"link" db:"link"`
	NoClick   int       `json:"no_click" db:"no_click"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
