package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"libraryhub/internal/library/ports/services"
)

const (
	errWritingXLSX = "error writing xlsx report"

	sheetBooks = "Books"
	sheetLoans = "Loans"
)

// XLSX книга с листами Books и Loans.
type XLSX struct{}

func (XLSX) Format() string { return FormatXLSX }
func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSX) Render(w io.Writer, data *services.ReportData) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetBooks); err != nil {
		return fmt.Errorf("%s: %w", errWritingXLSX, err)
	}
	if _, err := f.NewSheet(sheetLoans); err != nil {
		return fmt.Errorf("%s: %w", errWritingXLSX, err)
	}

	books := make([][]string, 0, len(data.Books))
	for _, b := range data.Books {
		books = append(books, bookRow(b))
	}
	loans := make([][]string, 0, len(data.Loans))
	for _, l := range data.Loans {
		loans = append(loans, loanRow(l))
	}

	if err := writeSheet(f, sheetBooks, bookHeader, books); err != nil {
		return err
	}
	if err := writeSheet(f, sheetLoans, loanHeader, loans); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetBooks, "A", "C", 38); err != nil {
		return fmt.Errorf("%s: %w", errWritingXLSX, err)
	}
	if err := f.SetColWidth(sheetLoans, "A", "C", 38); err != nil {
		return fmt.Errorf("%s: %w", errWritingXLSX, err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%s: %w", errWritingXLSX, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s: %w", errWritingXLSX, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%s: %w", errWritingXLSX, err)
		}
	}
	return nil
}
