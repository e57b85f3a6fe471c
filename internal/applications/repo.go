package applications

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Manudd25/WorkCompass/internal/domain"
	"github.com/Manudd25/WorkCompass/internal/policy"
)

var ErrNotFound = errors.New("application not found")

// Repository stores application records. Every read and write takes a
// policy.Scope and restricts the statement to it; there is no unscoped path.
type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

// scopeClause renders the scope as a predicate over applications a, with
// placeholders starting after the given arg count.
func scopeClause(scope policy.Scope, argOffset int) (string, []any) {
	if scope.OwnerID != "" {
		return "a.candidate_id = $" + strconv.Itoa(argOffset+1), []any{scope.OwnerID}
	}
	return "a.candidate_id IN (SELECT id FROM users WHERE role = $" + strconv.Itoa(argOffset+1) +
		" AND recruiter_company = $" + strconv.Itoa(argOffset+2) + ")", []any{domain.RoleCandidate, scope.TenantKey}
}

// NewApplication carries the fields Create persists.
type NewApplication struct {
	Company          string
	Role             string
	Status           string
	AppliedOn        *time.Time
	Notes            *string
	CandidateID      string
	RecruiterCompany *string
}

func (r *Repository) Create(ctx context.Context, na NewApplication) (*domain.Application, error) {
	var app domain.Application
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO applications (company, role, status, applied_on, notes, candidate_id, recruiter_company)
		VALUES ($1, $2, $3, COALESCE($4, now()), $5, $6, $7)
		RETURNING id, company, role, status, applied_on, notes, interview_time,
			interview_date, interview_location, interview_type, interview_notes,
			candidate_id, recruiter_company, created_at`,
		na.Company, na.Role, na.Status, na.AppliedOn, na.Notes, na.CandidateID, na.RecruiterCompany,
	).Scan(
		&app.ID, &app.Company, &app.Role, &app.Status, &app.AppliedOn, &app.Notes,
		&app.InterviewTime, &app.InterviewDate, &app.InterviewLocation,
		&app.InterviewType, &app.InterviewNotes, &app.CandidateID,
		&app.RecruiterCompany, &app.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// List returns the applications admitted by the scope, newest first, with the
// owning candidate's name and email joined in.
func (r *Repository) List(ctx context.Context, scope policy.Scope) ([]domain.Application, error) {
	clause, args := scopeClause(scope, 0)
	rows, err := r.Pool.Query(ctx, `
		SELECT a.id, a.company, a.role, a.status, a.applied_on, a.notes,
			a.interview_time, a.interview_date, a.interview_location,
			a.interview_type, a.interview_notes, a.candidate_id,
			a.recruiter_company, a.created_at, u.name, u.email
		FROM applications a
		JOIN users u ON u.id = a.candidate_id
		WHERE `+clause+`
		ORDER BY a.applied_on DESC, a.created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Application, 0)
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.Company, &app.Role, &app.Status, &app.AppliedOn, &app.Notes,
			&app.InterviewTime, &app.InterviewDate, &app.InterviewLocation,
			&app.InterviewType, &app.InterviewNotes, &app.CandidateID,
			&app.RecruiterCompany, &app.CreatedAt, &app.CandidateName, &app.CandidateEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// Patch is a partial application update: nil means "leave unchanged".
// For the nullable interview columns an empty string clears the value, and
// ClearInterviewDate does the same for the date. CandidateID is deliberately
// absent; ownership never changes.
type Patch struct {
	Company            *string
	Role               *string
	Status             *string
	AppliedOn          *time.Time
	Notes              *string
	InterviewTime      *string
	InterviewDate      *time.Time
	ClearInterviewDate bool
	InterviewLocation  *string
	InterviewType      *string
	InterviewNotes     *string
}

// nullclear maps the empty string to SQL NULL so clearing a nullable column
// never trips its CHECK constraint.
func nullclear(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func patchSQL(p Patch) (string, []any) {
	set := make([]string, 0, 10)
	args := make([]any, 0, 10)
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, col+" = $"+strconv.Itoa(len(args)))
	}

	if p.Company != nil {
		add("company", *p.Company)
	}
	if p.Role != nil {
		add("role", *p.Role)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.AppliedOn != nil {
		add("applied_on", *p.AppliedOn)
	}
	if p.Notes != nil {
		add("notes", nullclear(*p.Notes))
	}
	if p.InterviewTime != nil {
		add("interview_time", nullclear(*p.InterviewTime))
	}
	if p.InterviewDate != nil {
		add("interview_date", *p.InterviewDate)
	} else if p.ClearInterviewDate {
		add("interview_date", nil)
	}
	if p.InterviewLocation != nil {
		add("interview_location", nullclear(*p.InterviewLocation))
	}
	if p.InterviewType != nil {
		add("interview_type", nullclear(*p.InterviewType))
	}
	if p.InterviewNotes != nil {
		add("interview_notes", nullclear(*p.InterviewNotes))
	}
	return strings.Join(set, ", "), args
}

// Update patches one application matching id and scope jointly; no match
// reports ErrNotFound whether the row is missing or merely out of scope.
func (r *Repository) Update(ctx context.Context, id string, scope policy.Scope, p Patch) (*domain.Application, error) {
	setClause, args := patchSQL(p)
	if setClause == "" {
		return r.getScoped(ctx, id, scope)
	}

	args = append(args, id)
	idPos := len(args)
	clause, scopeArgs := scopeClause(scope, idPos)
	args = append(args, scopeArgs...)

	var app domain.Application
	err := r.Pool.QueryRow(ctx, `
		UPDATE applications a SET `+setClause+`
		WHERE a.id = $`+strconv.Itoa(idPos)+` AND `+clause+`
		RETURNING a.id, a.company, a.role, a.status, a.applied_on, a.notes,
			a.interview_time, a.interview_date, a.interview_location,
			a.interview_type, a.interview_notes, a.candidate_id,
			a.recruiter_company, a.created_at`,
		args...,
	).Scan(
		&app.ID, &app.Company, &app.Role, &app.Status, &app.AppliedOn, &app.Notes,
		&app.InterviewTime, &app.InterviewDate, &app.InterviewLocation,
		&app.InterviewType, &app.InterviewNotes, &app.CandidateID,
		&app.RecruiterCompany, &app.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *Repository) getScoped(ctx context.Context, id string, scope policy.Scope) (*domain.Application, error) {
	clause, scopeArgs := scopeClause(scope, 1)
	args := append([]any{id}, scopeArgs...)

	var app domain.Application
	err := r.Pool.QueryRow(ctx, `
		SELECT a.id, a.company, a.role, a.status, a.applied_on, a.notes,
			a.interview_time, a.interview_date, a.interview_location,
			a.interview_type, a.interview_notes, a.candidate_id,
			a.recruiter_company, a.created_at
		FROM applications a
		WHERE a.id = $1 AND `+clause,
		args...,
	).Scan(
		&app.ID, &app.Company, &app.Role, &app.Status, &app.AppliedOn, &app.Notes,
		&app.InterviewTime, &app.InterviewDate, &app.InterviewLocation,
		&app.InterviewType, &app.InterviewNotes, &app.CandidateID,
		&app.RecruiterCompany, &app.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Delete removes one application matching id and scope jointly.
func (r *Repository) Delete(ctx context.Context, id string, scope policy.Scope) error {
	clause, scopeArgs := scopeClause(scope, 1)
	args := append([]any{id}, scopeArgs...)

	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM applications a WHERE a.id = $1 AND `+clause, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
