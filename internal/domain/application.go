package domain

import "time"

// Application statuses, in pipeline order.
const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
)

// Interview types.
const (
	InterviewVideo    = "video"
	InterviewPhone    = "phone"
	InterviewInPerson = "in-person"
)

// Application is a job-application record owned by exactly one candidate.
// CandidateID is immutable after creation.
type Application struct {
	ID                string     `db:"id" json:"id"`
	Company           string     `db:"company" json:"company"`
	Role              string     `db:"role" json:"role"`
	Status            string     `db:"status" json:"status"`
	AppliedOn         time.Time  `db:"applied_on" json:"date"`
	Notes             *string    `db:"notes" json:"notes,omitempty"`
	InterviewTime     *string    `db:"interview_time" json:"interview_time,omitempty"`
	InterviewDate     *time.Time `db:"interview_date" json:"interview_date,omitempty"`
	InterviewLocation *string    `db:"interview_location" json:"interview_location,omitempty"`
	InterviewType     *string    `db:"interview_type" json:"interview_type,omitempty"`
	InterviewNotes    *string    `db:"interview_notes" json:"interview_notes,omitempty"`
	CandidateID       string     `db:"candidate_id" json:"candidate_id"`
	CandidateName     string     `db:"-" json:"candidate_name,omitempty"`
	CandidateEmail    string     `db:"-" json:"candidate_email,omitempty"`
	RecruiterCompany  *string    `db:"recruiter_company" json:"recruiter_company,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}

// ValidStatus reports whether s is one of the four application statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// ValidInterviewType reports whether s is a known interview type.
func ValidInterviewType(s string) bool {
	switch s {
	case InterviewVideo, InterviewPhone, InterviewInPerson:
		return true
	}
	return false
}
