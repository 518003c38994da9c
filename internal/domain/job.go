package domain

import "time"

// JobType enumerates the work arrangement of a posting.
type JobType string

const (
	JobTypeOnSite     JobType = "On Site"
	JobTypeRemote     JobType = "Remote"
	JobTypeInternship JobType = "Internship"
)

// Valid reports whether the type is one of the known enum values.
func (t JobType) Valid() bool {
	return t == JobTypeOnSite || t == JobTypeRemote || t == JobTypeInternship
}

// Job is a posting owned by an employer. Salary is free text as submitted;
// no currency normalization is applied. Expired postings stay readable by
// their poster but drop out of the public listing.
type Job struct {
	ID          string
	Title       string
	Description string
	Category    string
	Type        JobType
	CompanyName string
	Country     string
	City        string
	Salary      string
	Expired     bool
	PostedBy    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
