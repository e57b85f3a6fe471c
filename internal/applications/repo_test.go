package applications

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Manudd25/WorkCompass/internal/policy"
)

func TestScopeClauseOwner(t *testing.T) {
	clause, args := scopeClause(policy.Scope{OwnerID: "c1"}, 2)
	if clause != "a.candidate_id = $3" {
		t.Fatalf("unexpected clause: %s", clause)
	}
	if len(args) != 1 || args[0] != "c1" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestScopeClauseTenant(t *testing.T) {
	clause, args := scopeClause(policy.Scope{TenantKey: "Co1"}, 0)
	if !strings.Contains(clause, "recruiter_company = $2") {
		t.Fatalf("unexpected clause: %s", clause)
	}
	if len(args) != 2 || args[1] != "Co1" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestPatchSQLEmpty(t *testing.T) {
	clause, args := patchSQL(Patch{})
	if clause != "" || len(args) != 0 {
		t.Fatalf("empty patch produced %q %v", clause, args)
	}
}

func TestPatchSQLSkipsAbsentFields(t *testing.T) {
	status := "Interview"
	notes := "phone screen done"
	clause, args := patchSQL(Patch{Status: &status, Notes: &notes})

	if clause != "status = $1, notes = $2" {
		t.Fatalf("unexpected clause: %s", clause)
	}
	if len(args) != 2 || args[0] != "Interview" || args[1] != "phone screen done" {
		t.Fatalf("unexpected args: %v", args)
	}
	if strings.Contains(clause, "company") || strings.Contains(clause, "candidate_id") {
		t.Fatalf("clause touches absent fields: %s", clause)
	}
}

func TestPatchSQLInterviewFields(t *testing.T) {
	when := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	hour := "14:30"
	kind := "video"
	clause, args := patchSQL(Patch{
		InterviewDate: &when,
		InterviewTime: &hour,
		InterviewType: &kind,
	})

	want := "interview_time = $1, interview_date = $2, interview_type = $3"
	if clause != want {
		t.Fatalf("clause = %q, want %q", clause, want)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestPatchSQLEmptyStringClearsNullableColumns(t *testing.T) {
	empty := ""
	clause, args := patchSQL(Patch{
		Notes:             &empty,
		InterviewTime:     &empty,
		InterviewLocation: &empty,
		InterviewType:     &empty,
		InterviewNotes:    &empty,
	})

	want := "notes = $1, interview_time = $2, interview_location = $3, interview_type = $4, interview_notes = $5"
	if clause != want {
		t.Fatalf("clause = %q, want %q", clause, want)
	}
	// Each cleared column must carry NULL, not ''. The interview_type CHECK
	// constraint rejects the empty string outright.
	for i, a := range args {
		if a != nil {
			t.Fatalf("arg %d = %#v, want nil", i+1, a)
		}
	}
}

func TestPatchSQLClearInterviewDate(t *testing.T) {
	clause, args := patchSQL(Patch{ClearInterviewDate: true})
	if clause != "interview_date = $1" {
		t.Fatalf("unexpected clause: %s", clause)
	}
	if len(args) != 1 || args[0] != nil {
		t.Fatalf("unexpected args: %v", args)
	}

	// An explicit date wins over the clear flag.
	when := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	_, args = patchSQL(Patch{InterviewDate: &when, ClearInterviewDate: true})
	if len(args) != 1 || args[0] != when {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestValidCandidateID(t *testing.T) {
	if err := validCandidateID(""); err != nil {
		t.Fatalf("empty id rejected: %v", err)
	}
	if err := validCandidateID("2d9f74f0-55a7-4b6e-9e0c-3f4f2b1a9c11"); err != nil {
		t.Fatalf("uuid rejected: %v", err)
	}
	err := validCandidateID("not-a-uuid")
	if err == nil {
		t.Fatal("malformed id accepted")
	}
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) || fiberErr.Code != fiber.StatusBadRequest {
		t.Fatalf("malformed id did not map to 400: %v", err)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("2026-08-31"); err != nil {
		t.Fatalf("plain date rejected: %v", err)
	}
	if _, err := parseDate("2026-08-31T10:00:00Z"); err != nil {
		t.Fatalf("RFC 3339 rejected: %v", err)
	}
	if _, err := parseDate("31/08/2026"); err == nil {
		t.Fatal("unknown format accepted")
	}
}
