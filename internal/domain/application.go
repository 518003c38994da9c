package domain

import "time"

// RoleRef is a user reference stored together with the role the reference
// represents on the application. The role tag is fixed at write time and
// records which side of the relationship the user was on, independent of any
// later change to the referenced records.
type RoleRef struct {
	User string
	Role Role
}

// ResumeRef points at an externally stored resume. No upload path exists;
// the field is carried for records that already have one.
type ResumeRef struct {
	PublicID string
	URL      string
}

// Application is a job seeker's submission against one job. Employer is a
// snapshot of the job's poster at submission time and is not re-derived if
// the job is later reassigned. Name, email and phone are the values submitted
// on the form, not the applicant's account fields.
type Application struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	CoverLetter string
	Resume      *ResumeRef
	Applicant   RoleRef
	Employer    RoleRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
