package domain

import "time"

// Role partitions accounts into the two sides of the board.
type Role string

const (
	RoleJobSeeker Role = "JobSeeker"
	RoleEmployer  Role = "Employer"
)

// Valid reports whether the role is one of the known enum values.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

// User is the domain model for registered accounts. The role is fixed at
// registration; there is no update path for it.
type User struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
