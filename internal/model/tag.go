package model

import "time"

// Tag is a colored label attachable to any number of todos.
type Tag struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Color       string    `json:"color" db:"color"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TagPalette is the default set of tag colors offered to the user.
// Any color value is accepted on a tag; the palette is advisory.
var TagPalette = []string{
	"#EF4444", "#F97316", "#F59E0B", "#EAB308", "#84CC16",
	"#22C55E", "#10B981", "#14B8A6", "#06B6D4", "#0EA5E9",
	"#3B82F6", "#6366F1", "#8B5CF6", "#A855F7", "#D946EF",
	"#EC4899", "#F43F5E", "#64748B", "#6B7280", "#71717A",
	"#737373", "#78716C", "#7C2D12", "#831843", "#052e16",
	"#082f49", "#0c4a6e", "#1e1b4b", "#312e81", "#3f6212",
	"#4c1d95", "#581c87", "#5b21b6", "#6b21a8", "#7e22ce",
	"#86198f", "#881337", "#9f1239", "#a21caf", "#b45309",
	"#b91c1c", "#be123c", "#be185d", "#c2410c", "#c026d3",
	"#ca8a04", "#dc2626",
}
