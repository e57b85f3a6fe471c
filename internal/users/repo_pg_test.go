package users

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Manudd25/WorkCompass/internal/policy"
)

// These tests exercise the transactional delete and reset-token statements
// against a real database. Set TEST_DATABASE_URL to a Postgres with the
// migrations applied to run them; they are skipped otherwise.

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func insertCandidate(t *testing.T, pool *pgxpool.Pool, tenant string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
		INSERT INTO users (name, email, password_hash, role, recruiter_company)
		VALUES ('Test Candidate', $1, '$2a$10$test', 'candidate', NULLIF($2, ''))
		RETURNING id`,
		uuid.NewString()+"@test.local", tenant,
	).Scan(&id)
	if err != nil {
		t.Fatalf("inserting candidate: %v", err)
	}
	return id
}

func insertApplication(t *testing.T, pool *pgxpool.Pool, candidateID string) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO applications (company, role, candidate_id)
		VALUES ('Acme', 'Engineer', $1)`, candidateID)
	if err != nil {
		t.Fatalf("inserting application: %v", err)
	}
}

func countApplications(t *testing.T, pool *pgxpool.Pool, candidateID string) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM applications WHERE candidate_id = $1`, candidateID).Scan(&n)
	if err != nil {
		t.Fatalf("counting applications: %v", err)
	}
	return n
}

func userExists(t *testing.T, pool *pgxpool.Pool, id string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		t.Fatalf("checking user: %v", err)
	}
	return exists
}

func TestDeleteCascadesOwnApplicationsOnly(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	victim := insertCandidate(t, pool, "")
	insertApplication(t, pool, victim)
	insertApplication(t, pool, victim)
	bystander := insertCandidate(t, pool, "")
	insertApplication(t, pool, bystander)
	defer repo.Delete(ctx, bystander)

	if err := repo.Delete(ctx, victim); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if userExists(t, pool, victim) {
		t.Fatal("deleted user still present")
	}
	if n := countApplications(t, pool, victim); n != 0 {
		t.Fatalf("deleted user still owns %d applications", n)
	}
	if !userExists(t, pool, bystander) {
		t.Fatal("unrelated user was deleted")
	}
	if n := countApplications(t, pool, bystander); n != 1 {
		t.Fatalf("unrelated user's applications touched, %d left", n)
	}
}

func TestDeleteCandidateOutOfTenantTouchesNothing(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	id := insertCandidate(t, pool, "Tenant A")
	insertApplication(t, pool, id)
	defer repo.Delete(ctx, id)

	err := repo.DeleteCandidate(ctx, id, policy.Scope{TenantKey: "Tenant B"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("out-of-tenant delete: %v, want ErrNotFound", err)
	}
	if !userExists(t, pool, id) {
		t.Fatal("out-of-tenant delete removed the user")
	}
	if n := countApplications(t, pool, id); n != 1 {
		t.Fatalf("out-of-tenant delete removed applications, %d left", n)
	}

	if err := repo.DeleteCandidate(ctx, id, policy.Scope{TenantKey: "Tenant A"}); err != nil {
		t.Fatalf("in-tenant delete: %v", err)
	}
	if userExists(t, pool, id) || countApplications(t, pool, id) != 0 {
		t.Fatal("in-tenant delete left rows behind")
	}
}

func TestConsumeResetTokenSingleUse(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	id := insertCandidate(t, pool, "")
	defer repo.Delete(ctx, id)

	token := uuid.NewString()
	if err := repo.SetResetToken(ctx, id, token, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("set token: %v", err)
	}

	if err := repo.ConsumeResetToken(ctx, id, token, "$2a$10$newhash"); err != nil {
		t.Fatalf("first consume: %v", err)
	}

	u, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if u.PasswordHash == nil || *u.PasswordHash != "$2a$10$newhash" {
		t.Fatal("password hash not replaced")
	}

	// The stored token was cleared, so replaying it must fail.
	if err := repo.ConsumeResetToken(ctx, id, token, "$2a$10$otherhash"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("replayed consume: %v, want ErrNotFound", err)
	}
}

func TestConsumeResetTokenExpired(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	id := insertCandidate(t, pool, "")
	defer repo.Delete(ctx, id)

	token := uuid.NewString()
	if err := repo.SetResetToken(ctx, id, token, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := repo.ConsumeResetToken(ctx, id, token, "$2a$10$newhash"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired consume: %v, want ErrNotFound", err)
	}
}
