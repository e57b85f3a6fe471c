package users

import (
	"strings"
	"testing"
	"time"
)

func TestPatchSQLAlwaysTouchesUpdatedAt(t *testing.T) {
	clause, args := patchSQL(Patch{})
	if clause != "updated_at = now()" {
		t.Fatalf("unexpected clause: %s", clause)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestPatchSQLLowercasesEmail(t *testing.T) {
	email := "  Jane.Doe@Example.COM "
	_, args := patchSQL(Patch{Email: &email})
	if len(args) != 1 || args[0] != "jane.doe@example.com" {
		t.Fatalf("email not normalized: %v", args)
	}
}

func TestPatchSQLClearStartDate(t *testing.T) {
	clause, args := patchSQL(Patch{ClearStartDate: true})
	if !strings.Contains(clause, "early_start_date = $1") {
		t.Fatalf("unexpected clause: %s", clause)
	}
	if len(args) != 1 || args[0] != nil {
		t.Fatalf("expected single nil arg, got %v", args)
	}
}

func TestPatchSQLSetWinsOverClear(t *testing.T) {
	when := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	_, args := patchSQL(Patch{EarlyStartDate: &when, ClearStartDate: true})
	if len(args) != 1 || args[0] != when {
		t.Fatalf("expected the explicit date to win, got %v", args)
	}
}

func TestPatchSQLPlaceholdersAreSequential(t *testing.T) {
	name := "Jane"
	email := "jane@example.com"
	loc := "Berlin"
	clause, args := patchSQL(Patch{Name: &name, Email: &email, Location: &loc})

	if clause != "name = $1, email = $2, location = $3, updated_at = now()" {
		t.Fatalf("unexpected clause: %s", clause)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %v", args)
	}
}
