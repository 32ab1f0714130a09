package domain

import "time"

// User is the domain model for registered members.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	PhoneNumber      string
	Gender           string
	DateOfBirth      time.Time
	MembershipStatus string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
