// Package report рендерит отчеты каталога в csv, pdf и xlsx.
package report

import (
	"strconv"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/services"
)

const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

var (
	bookHeader = []string{"ID", "Title", "Author ID", "Published", "Total Copies", "Available"}
	loanHeader = []string{"ID", "User ID", "Book ID", "Loan Date", "Due Date", "Return Date", "Fine"}
)

// All все поддерживаемые форматы.
func All() []services.ReportRenderer {
	return []services.ReportRenderer{CSV{}, PDF{}, XLSX{}}
}

func bookRow(b *entities.Book) []string {
	return []string{
		b.ID,
		b.Title,
		b.AuthorID,
		b.PublishedDate.Format(entities.DateLayout),
		strconv.Itoa(b.TotalCopies),
		strconv.Itoa(b.AvailableCopies),
	}
}

func loanRow(l *entities.Loan) []string {
	returned := ""
	if l.ReturnDate != nil {
		returned = l.ReturnDate.Format(entities.DateLayout)
	}
	return []string{
		l.ID,
		l.UserID,
		l.BookID,
		l.LoanDate.Format(entities.DateLayout),
		l.DueDate.Format(entities.DateLayout),
		returned,
		l.FineAmount.StringFixed(2),
	}
}
