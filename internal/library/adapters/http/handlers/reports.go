package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libraryhub/internal/library/ports/api"
)

const (
	LogHandlerReport = "report handler: generate"

	reportFilePrefix = "library-report"
)

type ReportHandler struct {
	reports api.ReportService
}

func NewReportHandler(reports api.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate отдает отчет как вложение.
func (h *ReportHandler) Generate(ctx fiber.Ctx) error {
	format := ctx.Params("format")
	requestCtx := logRequest(ctx, LogHandlerReport, zap.String("format", format))

	contentType, err := h.reports.ContentType(format)
	if err != nil {
		return handleError(ctx, err)
	}

	var buf bytes.Buffer
	if err := h.reports.Generate(requestCtx, format, &buf); err != nil {
		return handleError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.%s"`, reportFilePrefix, format))
	if err := ctx.Status(fiber.StatusOK).Send(buf.Bytes()); err != nil {
		return fmt.Errorf("sending report: %w", err)
	}
	return nil
}
