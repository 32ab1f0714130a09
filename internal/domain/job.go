package domain

import "time"

// Company is a value embedded in a job posting. It has no identity or
// lifecycle of its own.
type Company struct {
	Name         string
	Description  string
	ContactEmail string
	ContactPhone string
}

// Job is the aggregate for job postings.
type Job struct {
	ID          string
	Title       string
	Type        string
	Location    string
	Description string
	Salary      string
	Company     Company
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
