// Package policy decides which records an authenticated actor may see or
// mutate. Every decision returns either a concrete scope the store layer
// embeds in its queries, or an explicit denial; handlers never build filters
// themselves.
package policy

import (
	"context"

	"github.com/Manudd25/WorkCompass/internal/domain"
)

// Actor is the authenticated identity making a request.
type Actor struct {
	ID        string
	Role      string
	Email     string
	TenantKey string
}

func (a Actor) IsRecruiter() bool { return a.Role == domain.RoleRecruiter }
func (a Actor) IsCandidate() bool { return a.Role == domain.RoleCandidate }

// Scope restricts a query over applications or candidates. Exactly one of
// OwnerID and TenantKey is set: OwnerID pins rows to a single candidate,
// TenantKey admits every candidate of one recruiter company.
type Scope struct {
	OwnerID   string
	TenantKey string
}

// TenantLookup resolves a candidate id to its tenant stamp.
// Implemented by the users repository.
type TenantLookup interface {
	// CandidateTenant returns (tenantKey, true) when a candidate with the
	// given id exists, where tenantKey may be empty for self-signed-up
	// candidates. The bool is false when there is no such candidate.
	CandidateTenant(ctx context.Context, candidateID string) (string, bool, error)
}

// Engine evaluates access decisions.
type Engine struct {
	Tenants TenantLookup
}

func NewEngine(tenants TenantLookup) *Engine {
	return &Engine{Tenants: tenants}
}

// ApplicationScope computes the filter for any operation on applications.
// Candidates are always pinned to their own rows; a supplied foreign
// candidate id is ignored rather than honored. Recruiters naming a candidate
// get that candidate only after a tenant-membership check; recruiters naming
// nobody get their whole tenant.
func (e *Engine) ApplicationScope(ctx context.Context, actor Actor, requestedCandidateID string) (Scope, error) {
	switch actor.Role {
	case domain.RoleCandidate:
		return Scope{OwnerID: actor.ID}, nil

	case domain.RoleRecruiter:
		if actor.TenantKey == "" {
			return Scope{}, ErrNoTenant
		}
		if requestedCandidateID == "" {
			return Scope{TenantKey: actor.TenantKey}, nil
		}
		tenant, found, err := e.Tenants.CandidateTenant(ctx, requestedCandidateID)
		if err != nil {
			return Scope{}, err
		}
		if !found || tenant != actor.TenantKey {
			return Scope{}, ErrForbidden
		}
		return Scope{OwnerID: requestedCandidateID}, nil
	}
	return Scope{}, ErrForbidden
}

// CandidateScope computes the filter for listing or mutating candidate
// records. Only recruiters hold this capability, and only within their own
// tenant. By-id mutations must still match the scope in the store query so an
// out-of-tenant id surfaces as not found, never as a cross-tenant hint.
func (e *Engine) CandidateScope(actor Actor) (Scope, error) {
	if !actor.IsRecruiter() {
		return Scope{}, ErrForbidden
	}
	if actor.TenantKey == "" {
		return Scope{}, ErrNoTenant
	}
	return Scope{TenantKey: actor.TenantKey}, nil
}
