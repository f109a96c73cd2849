package report_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"libraryhub/internal/library/adapters/report"
	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/services"
)

func sampleData() *services.ReportData {
	returned := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	return &services.ReportData{
		Title:       "Library report",
		GeneratedAt: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		Books: []*entities.Book{{
			ID: "b1", Title: "Memórias Póstumas", AuthorID: "a1",
			PublishedDate: time.Date(1881, 1, 1, 0, 0, 0, 0, time.UTC),
			TotalCopies:   3, AvailableCopies: 2,
		}},
		Loans: []*entities.Loan{
			{
				ID: "l1", UserID: "u1", BookID: "b1",
				LoanDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				DueDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				ReturnDate: &returned,
				FineAmount: decimal.RequireFromString("10"),
			},
			{
				ID: "l2", UserID: "u1", BookID: "b1",
				LoanDate: time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
				DueDate:  time.Date(2024, 2, 8, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.CSV{}.Render(&buf, sampleData()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"ID", "Title", "Author ID", "Published", "Total Copies", "Available"}, records[0])
	assert.Equal(t, []string{"b1", "Memórias Póstumas", "a1", "1881-01-01", "3", "2"}, records[1])
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.PDF{}.Render(&buf, sampleData()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, "application/pdf", report.PDF{}.ContentType())
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.XLSX{}.Render(&buf, sampleData()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Books", "Loans"}, f.GetSheetList())

	title, err := f.GetCellValue("Books", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Memórias Póstumas", title)

	rows, err := f.GetRows("Loans")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "10.00", rows[1][6])
	assert.Equal(t, "2024-01-20", rows[1][5])
}

func TestAllFormats(t *testing.T) {
	var formats []string
	for _, r := range report.All() {
		formats = append(formats, r.Format())
	}
	assert.ElementsMatch(t, []string{"csv", "pdf", "xlsx"}, formats)
}
