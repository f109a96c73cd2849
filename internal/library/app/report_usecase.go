package app

import (
	"context"
	"io"
	"sort"

	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
	"libraryhub/internal/library/ports/repositories"
	"libraryhub/internal/library/ports/services"
	"libraryhub/pkg/logger"
)

const (
	methodGenerateReport = "ReportUseCase.Generate"

	msgReportGenerated = "report generated"

	errCtxLoadingReport   = "loading report data"
	errCtxRenderingReport = "rendering report"

	reportTitle = "Library report"
)

// ReportUseCase строит отчеты по каталогу и выдачам.
type ReportUseCase struct {
	store     repositories.Store
	clock     services.Clock
	renderers map[string]services.ReportRenderer
}

var _ api.ReportService = (*ReportUseCase)(nil)

func NewReportUseCase(store repositories.Store, clock services.Clock, renderers ...services.ReportRenderer) *ReportUseCase {
	byFormat := make(map[string]services.ReportRenderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &ReportUseCase{store: store, clock: clock, renderers: byFormat}
}

// Formats поддерживаемые форматы по алфавиту.
func (uc *ReportUseCase) Formats() []string {
	out := make([]string, 0, len(uc.renderers))
	for f := range uc.renderers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (uc *ReportUseCase) ContentType(format string) (string, error) {
	r, ok := uc.renderers[format]
	if !ok {
		return "", entities.ErrUnknownFormat
	}
	return r.ContentType(), nil
}

// Generate пишет отчет формата format в w.
func (uc *ReportUseCase) Generate(ctx context.Context, format string, w io.Writer) error {
	log := logger.Log(ctx).With(zap.String("method", methodGenerateReport), zap.String("format", format))

	renderer, ok := uc.renderers[format]
	if !ok {
		return entities.ErrUnknownFormat
	}

	books, err := uc.store.Books().ListAll(ctx)
	if err != nil {
		logFailure(ctx, log, err)
		return wrap(errCtxLoadingReport, err)
	}
	loans, err := uc.store.Loans().List(ctx, repositories.LoanFilter{})
	if err != nil {
		logFailure(ctx, log, err)
		return wrap(errCtxLoadingReport, err)
	}

	data := &services.ReportData{
		Title:       reportTitle,
		GeneratedAt: uc.clock.Now(),
		Books:       books,
		Loans:       loans,
	}
	if err := renderer.Render(w, data); err != nil {
		log.Error(ctx, errCtxRenderingReport, zap.Error(err))
		return wrap(errCtxRenderingReport, err)
	}

	log.Info(ctx, msgReportGenerated, zap.Int("books", len(books)), zap.Int("loans", len(loans)))
	return nil
}
