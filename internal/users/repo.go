package users

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Manudd25/WorkCompass/internal/domain"
	"github.com/Manudd25/WorkCompass/internal/policy"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already exists")
)

const userColumns = `id, name, email, password_hash, role, oauth_provider, oauth_id,
	avatar_url, job_title, experience, skills, location, wished_salary,
	early_start_date, candidate_notes, striving_for, company, recruiter_company,
	created_at, updated_at`

// Repository is the user store. Candidate-scoped methods take a policy.Scope
// and embed it in the query so an out-of-tenant id behaves exactly like a
// missing one.
type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.OAuthProvider,
		&u.OAuthID, &u.AvatarURL, &u.JobTitle, &u.Experience, &u.Skills,
		&u.Location, &u.WishedSalary, &u.EarlyStartDate, &u.CandidateNotes,
		&u.StrivingFor, &u.Company, &u.RecruiterCompany, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.Pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	))
}

// EmailExists checks global uniqueness, optionally excluding one user id
// (for email changes). The UNIQUE constraint remains the backstop under
// concurrent requests.
func (r *Repository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id::text <> $2)`,
		strings.ToLower(strings.TrimSpace(email)), excludeID,
	).Scan(&exists)
	return exists, err
}

// NewUser carries the fields Create persists. Email is lowercased on insert.
type NewUser struct {
	Name             string
	Email            string
	PasswordHash     *string
	Role             string
	OAuthProvider    *string
	OAuthID          *string
	AvatarURL        *string
	JobTitle         *string
	Experience       *string
	Skills           *string
	Location         *string
	WishedSalary     *string
	EarlyStartDate   *time.Time
	CandidateNotes   *string
	Company          *string
	RecruiterCompany *string
}

func (r *Repository) Create(ctx context.Context, nu NewUser) (*domain.User, error) {
	row := r.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, oauth_provider, oauth_id,
			avatar_url, job_title, experience, skills, location, wished_salary,
			early_start_date, candidate_notes, company, recruiter_company)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+userColumns,
		nu.Name, strings.TrimSpace(nu.Email), nu.PasswordHash, nu.Role,
		nu.OAuthProvider, nu.OAuthID, nu.AvatarURL, nu.JobTitle, nu.Experience,
		nu.Skills, nu.Location, nu.WishedSalary, nu.EarlyStartDate,
		nu.CandidateNotes, nu.Company, nu.RecruiterCompany,
	)
	u, err := scanUser(row)
	if isUniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	return u, err
}

// CandidateTenant implements policy.TenantLookup.
func (r *Repository) CandidateTenant(ctx context.Context, candidateID string) (string, bool, error) {
	var tenant *string
	err := r.Pool.QueryRow(
		ctx,
		`SELECT recruiter_company FROM users WHERE id = $1 AND role = $2`,
		candidateID, domain.RoleCandidate,
	).Scan(&tenant)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if tenant == nil {
		return "", true, nil
	}
	return *tenant, true, nil
}

// ListCandidates returns the candidates of one tenant, newest first.
func (r *Repository) ListCandidates(ctx context.Context, scope policy.Scope) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = $1 AND recruiter_company = $2
		ORDER BY created_at DESC`,
		domain.RoleCandidate, scope.TenantKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// GetCandidate loads one candidate within the tenant scope.
func (r *Repository) GetCandidate(ctx context.Context, id string, scope policy.Scope) (*domain.User, error) {
	return scanUser(r.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1 AND role = $2 AND recruiter_company = $3`,
		id, domain.RoleCandidate, scope.TenantKey,
	))
}

// Patch is a partial user update: nil means "leave unchanged".
type Patch struct {
	Name             *string
	Email            *string
	JobTitle         *string
	Experience       *string
	Skills           *string
	Location         *string
	WishedSalary     *string
	EarlyStartDate   *time.Time
	ClearStartDate   bool
	CandidateNotes   *string
	StrivingFor      *string
	Company          *string
	RecruiterCompany *string
}

func patchSQL(p Patch) (string, []any) {
	set := make([]string, 0, 12)
	args := make([]any, 0, 12)
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, col+" = $"+strconv.Itoa(len(args)))
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Email != nil {
		add("email", strings.ToLower(strings.TrimSpace(*p.Email)))
	}
	if p.JobTitle != nil {
		add("job_title", *p.JobTitle)
	}
	if p.Experience != nil {
		add("experience", *p.Experience)
	}
	if p.Skills != nil {
		add("skills", *p.Skills)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.WishedSalary != nil {
		add("wished_salary", *p.WishedSalary)
	}
	if p.EarlyStartDate != nil {
		add("early_start_date", *p.EarlyStartDate)
	} else if p.ClearStartDate {
		add("early_start_date", nil)
	}
	if p.CandidateNotes != nil {
		add("candidate_notes", *p.CandidateNotes)
	}
	if p.StrivingFor != nil {
		add("striving_for", *p.StrivingFor)
	}
	if p.Company != nil {
		add("company", *p.Company)
	}
	if p.RecruiterCompany != nil {
		add("recruiter_company", *p.RecruiterCompany)
	}
	set = append(set, "updated_at = now()")
	return strings.Join(set, ", "), args
}

// Update applies a patch to the user's own row.
func (r *Repository) Update(ctx context.Context, id string, p Patch) (*domain.User, error) {
	setClause, args := patchSQL(p)
	args = append(args, id)
	row := r.Pool.QueryRow(ctx,
		`UPDATE users SET `+setClause+` WHERE id = $`+strconv.Itoa(len(args))+` RETURNING `+userColumns,
		args...,
	)
	u, err := scanUser(row)
	if isUniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	return u, err
}

// UpdateCandidate applies a patch to a candidate row inside the tenant scope.
// No row matching id-and-scope jointly reports ErrNotFound.
func (r *Repository) UpdateCandidate(ctx context.Context, id string, scope policy.Scope, p Patch) (*domain.User, error) {
	setClause, args := patchSQL(p)
	args = append(args, id, domain.RoleCandidate, scope.TenantKey)
	n := len(args)
	row := r.Pool.QueryRow(ctx,
		`UPDATE users SET `+setClause+
			` WHERE id = $`+strconv.Itoa(n-2)+` AND role = $`+strconv.Itoa(n-1)+` AND recruiter_company = $`+strconv.Itoa(n)+
			` RETURNING `+userColumns,
		args...,
	)
	u, err := scanUser(row)
	if isUniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	return u, err
}

func (r *Repository) SetPasswordHash(ctx context.Context, id, hash string) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResetToken stores the outstanding reset token and its expiry.
func (r *Repository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE users SET reset_token = $1, reset_token_expires_at = $2 WHERE id = $3`,
		token, expires, id)
	return err
}

// ConsumeResetToken sets the new password hash and clears the stored token in
// one statement, but only when the presented token is the outstanding one and
// has not passed its stored expiry. ErrNotFound means the token was already
// used, replaced or expired.
func (r *Repository) ConsumeResetToken(ctx context.Context, id, token, newHash string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expires_at = NULL,
			updated_at = now()
		WHERE id = $2 AND reset_token = $3 AND reset_token_expires_at > now()`,
		newHash, id, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user and all applications it owns in one transaction.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.deleteWithScope(ctx, id, "")
}

// DeleteCandidate removes a candidate within the tenant scope, cascading that
// candidate's applications. Out-of-tenant ids report ErrNotFound.
func (r *Repository) DeleteCandidate(ctx context.Context, id string, scope policy.Scope) error {
	return r.deleteWithScope(ctx, id, scope.TenantKey)
}

func (r *Repository) deleteWithScope(ctx context.Context, id, tenantKey string) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE candidate_id = $1`, id); err != nil {
		return err
	}

	var tag pgconn.CommandTag
	if tenantKey == "" {
		tag, err = tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	} else {
		tag, err = tx.Exec(ctx,
			`DELETE FROM users WHERE id = $1 AND role = $2 AND recruiter_company = $3`,
			id, domain.RoleCandidate, tenantKey)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}
