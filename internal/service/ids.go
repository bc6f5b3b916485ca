package service

import "github.com/google/uuid"

// newID generates a creation-time-ordered identifier. UUIDv7 keeps
// ids opaque while deriving them from the creation instant.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
