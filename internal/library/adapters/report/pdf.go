package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/services"
)

const (
	errWritingPDF = "error writing pdf report"
	pdfFont       = "Helvetica"
)

// PDF сводка книг и выдач.
type PDF struct{}

func (PDF) Format() string      { return FormatPDF }
func (PDF) ContentType() string { return "application/pdf" }

func (PDF) Render(w io.Writer, data *services.ReportData) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(data.Title, true)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, tr(data.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 9)
	pdf.CellFormat(0, 6, "Generated "+data.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, "Books", "", 1, "", false, 0, "")
	pdf.SetFont(pdfFont, "", 9)
	for _, b := range data.Books {
		line := fmt.Sprintf("%s | %s | Available: %d of %d", b.ID, b.Title, b.AvailableCopies, b.TotalCopies)
		pdf.CellFormat(0, 6, tr(line), "", 1, "", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, "Loans", "", 1, "", false, 0, "")
	pdf.SetFont(pdfFont, "", 8)
	for _, l := range data.Loans {
		pdf.CellFormat(0, 5, tr(loanLine(l)), "", 1, "", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%s: %w", errWritingPDF, err)
	}
	return nil
}

func loanLine(l *entities.Loan) string {
	row := loanRow(l)
	if row[5] == "" {
		row[5] = "open"
	}
	return strings.Join([]string{
		row[0],
		"User: " + row[1],
		"Book: " + row[2],
		"Loan: " + row[3],
		"Due: " + row[4],
		"Return: " + row[5],
		"Fine: " + row[6],
	}, " | ")
}
