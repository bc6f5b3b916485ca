package model

import "time"

// ProfileID is the fixed identifier of the singleton profile record.
const ProfileID = "user"

// hoursPerYear accounts for leap years.
const hoursPerYear = 365.25 * 24

// Profile holds the user's display identity. It is only read for the
// age display and edited directly by the user.
type Profile struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Birthdate time.Time `json:"birthdate" db:"birthdate"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Age returns the user's age in fractional years at the given instant.
func (p *Profile) Age(now time.Time) float64 {
	return now.Sub(p.Birthdate).Hours() / hoursPerYear
}
