package policy

import "errors"

var (
	// ErrForbidden denies an operation the actor's role or tenant does not
	// permit.
	ErrForbidden = errors.New("forbidden")

	// ErrNoTenant reports a recruiter with no company key configured. This
	// is a configuration error surfaced as a bad request, never silently
	// widened to an unscoped filter.
	ErrNoTenant = errors.New("recruiter company not set")
)
