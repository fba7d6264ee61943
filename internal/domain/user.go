package domain

import "time"

// User represents an account able to sign in to the admin area. Users are
// provisioned out-of-band (seed tool or migration); the running service only
// ever reads them.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
