package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/pkg/logger"
)

const (
	LogReportWritten = "report written"

	ErrCreateReportDir  = "failed to create reports directory"
	ErrCreateReportFile = "failed to create report file"
)

func newReportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a catalog and loans report to a directory",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if out == "" {
				out = cfg.Library.ReportsDir
			}

			c, err := newContainer(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Close(ctx)

			if _, err := c.reports.ContentType(format); err != nil {
				return fmt.Errorf("%w: %s (available: %v)", err, format, c.reports.Formats())
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("%s: %w", ErrCreateReportDir, err)
			}

			name := filepath.Join(out, fmt.Sprintf("library-report-%s.%s", c.today().Format(entities.DateLayout), format))
			f, err := os.Create(name)
			if err != nil {
				return fmt.Errorf("%s: %w", ErrCreateReportFile, err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			if err := c.reports.Generate(ctx, format, f); err != nil {
				return err
			}
			logger.Log(ctx).Info(ctx, LogReportWritten, zap.String("file", name))
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pdf", "report format: csv, pdf or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output directory (defaults to LIBRARY_REPORTS_DIR)")
	return cmd
}
