// Package reports renders an actor's application list as CSV or PDF for
// download. Scoping is the caller's job; this package only formats.
package reports

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/Manudd25/WorkCompass/internal/domain"
)

var csvHeader = []string{"Company", "Role", "Status", "Date", "Candidate", "Email", "Notes"}

// RenderCSV writes the application list as CSV.
func RenderCSV(apps []domain.Application) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, a := range apps {
		notes := ""
		if a.Notes != nil {
			notes = *a.Notes
		}
		record := []string{
			a.Company,
			a.Role,
			a.Status,
			a.AppliedOn.Format("2006-01-02"),
			a.CandidateName,
			a.CandidateEmail,
			notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// RenderPDF writes the application list as a one-table PDF.
func RenderPDF(apps []domain.Application, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "WorkCompass Applications")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Generated: "+generatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 10)

	colW := []float64{50, 50, 28, 26, 50, 65}
	headers := []string{"COMPANY", "ROLE", "STATUS", "DATE", "CANDIDATE", "NOTES"}
	for i, htxt := range headers {
		last := i == len(headers)-1
		ln := 0
		if last {
			ln = 1
		}
		pdf.CellFormat(colW[i], 8, htxt, "1", ln, "C", true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, a := range apps {
		notes := ""
		if a.Notes != nil {
			notes = *a.Notes
		}
		pdf.CellFormat(colW[0], 7, truncate(a.Company, 30), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 7, truncate(a.Role, 30), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 7, a.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[3], 7, a.AppliedOn.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[4], 7, truncate(a.CandidateName, 30), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[5], 7, truncate(notes, 42), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
