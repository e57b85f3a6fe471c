package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/Manudd25/WorkCompass/internal/domain"
)

func sampleApps() []domain.Application {
	notes := "referred by Sam"
	return []domain.Application{
		{
			ID:             "a1",
			Company:        "Acme",
			Role:           "Eng",
			Status:         domain.StatusApplied,
			AppliedOn:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			Notes:          &notes,
			CandidateID:    "c1",
			CandidateName:  "Jane Doe",
			CandidateEmail: "jane@example.com",
		},
		{
			ID:             "a2",
			Company:        "Globex, Inc.",
			Role:           "Data \"Wizard\"",
			Status:         domain.StatusInterview,
			AppliedOn:      time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
			CandidateID:    "c1",
			CandidateName:  "Jane Doe",
			CandidateEmail: "jane@example.com",
		},
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := RenderCSV(sampleApps())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "Company" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "Acme" || records[1][2] != "Applied" || records[1][3] != "2026-08-01" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	// Commas and quotes in fields must survive the round trip.
	if records[2][0] != "Globex, Inc." || records[2][1] != `Data "Wizard"` {
		t.Fatalf("quoting broken: %v", records[2])
	}
}

func TestRenderCSVEmpty(t *testing.T) {
	out, err := RenderCSV(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestRenderPDFProducesDocument(t *testing.T) {
	out, err := RenderPDF(sampleApps(), time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 30); got != "short" {
		t.Fatalf("short string changed: %q", got)
	}
	long := "a very long company name that will not fit in a table cell"
	got := truncate(long, 20)
	if len([]rune(got)) != 20 {
		t.Fatalf("truncated to %d runes: %q", len([]rune(got)), got)
	}
}
