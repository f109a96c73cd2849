package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"libraryhub/internal/library/ports/services"
)

const errWritingCSV = "error writing csv report"

// CSV выгружает книги каталога.
type CSV struct{}

func (CSV) Format() string      { return FormatCSV }
func (CSV) ContentType() string { return "text/csv; charset=utf-8" }

func (CSV) Render(w io.Writer, data *services.ReportData) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(bookHeader); err != nil {
		return fmt.Errorf("%s: %w", errWritingCSV, err)
	}
	for _, b := range data.Books {
		if err := writer.Write(bookRow(b)); err != nil {
			return fmt.Errorf("%s: %w", errWritingCSV, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%s: %w", errWritingCSV, err)
	}
	return nil
}
