package domain

import "time"

// Roles a user can hold. Role is set at signup or provisioning and never
// changed afterwards.
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

// ProviderRecruiterCreated marks accounts provisioned by a recruiter. They
// carry no password hash and cannot log in until a reset flow sets one.
const ProviderRecruiterCreated = "recruiter-created"

// User represents a persisted user record. PasswordHash is nil for OAuth and
// recruiter-provisioned accounts. Company is the tenant stamp on candidates;
// RecruiterCompany is the tenant key on recruiters (and is copied onto
// provisioned candidates for data isolation).
type User struct {
	ID               string     `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     *string    `db:"password_hash" json:"-"`
	Role             string     `db:"role" json:"role"`
	OAuthProvider    *string    `db:"oauth_provider" json:"oauth_provider,omitempty"`
	OAuthID          *string    `db:"oauth_id" json:"-"`
	AvatarURL        *string    `db:"avatar_url" json:"avatar_url,omitempty"`
	JobTitle         *string    `db:"job_title" json:"job_title,omitempty"`
	Experience       *string    `db:"experience" json:"experience,omitempty"`
	Skills           *string    `db:"skills" json:"skills,omitempty"`
	Location         *string    `db:"location" json:"location,omitempty"`
	WishedSalary     *string    `db:"wished_salary" json:"wished_salary,omitempty"`
	EarlyStartDate   *time.Time `db:"early_start_date" json:"early_start_date,omitempty"`
	CandidateNotes   *string    `db:"candidate_notes" json:"candidate_notes,omitempty"`
	StrivingFor      *string    `db:"striving_for" json:"striving_for,omitempty"`
	Company          *string    `db:"company" json:"company,omitempty"`
	RecruiterCompany *string    `db:"recruiter_company" json:"recruiter_company,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// TenantKey returns the recruiter's company key, empty when unset.
func (u *User) TenantKey() string {
	if u.RecruiterCompany == nil {
		return ""
	}
	return *u.RecruiterCompany
}

// ValidRole reports whether s is one of the two known roles.
func ValidRole(s string) bool {
	return s == RoleCandidate || s == RoleRecruiter
}
