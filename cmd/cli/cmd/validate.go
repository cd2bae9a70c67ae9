// Package cmd - validate command
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"quotecalc/core/report"
	"quotecalc/core/validate"
	"quotecalc/internal/config"
)

var (
	validateMode      string
	validateTolerance string
	validateFormat    string
	validateOut       string
	validateWorkers   int
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Replay legacy spreadsheet quotes through the engine",
	Long: `Parse historical spreadsheet quotes, recompute them with the
calculation engine, and score every output field against the legacy
values within a numeric tolerance.

A failing file never aborts the batch; the report ranks failing files
by their worst deviation.

Examples:
  quotecalc validate legacy/quote-001.xlsx
  quotecalc validate --mode detailed --tolerance 0.5 legacy/*.xlsx
  quotecalc validate --format html --out report.html legacy/*.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateMode, "mode", "m", "", "validation mode (summary, detailed)")
	validateCmd.Flags().StringVarP(&validateTolerance, "tolerance", "t", "", "max allowed per-field deviation, settlement currency")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "", "report format (text, json, html, pdf)")
	validateCmd.Flags().StringVarP(&validateOut, "out", "o", "", "report output path (default stdout)")
	validateCmd.Flags().IntVarP(&validateWorkers, "workers", "w", 0, "parallel file workers")
	validateCmd.Flags().StringVarP(&settingsFile, "settings", "s", "", "organization settings YAML (default from config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	opts, err := validationOptions(cfg)
	if err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	workers := validateWorkers
	if workers == 0 {
		workers = cfg.Validation.Workers
	}

	batch, err := validate.New(opts).ValidateBatch(context.Background(), args, settings, workers)
	if err != nil {
		return err
	}

	format := validateFormat
	if format == "" {
		format = cfg.Report.DefaultFormat
	}
	formatter, err := report.Get(report.Format(format))
	if err != nil {
		return err
	}

	out := validateOut
	if out == "" {
		out = cfg.Report.OutputPath
	}
	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := formatter.Render(w, batch); err != nil {
		return err
	}

	if batch.FailedCount > 0 {
		return fmt.Errorf("%d of %d files failed validation", batch.FailedCount, len(batch.Files))
	}
	return nil
}

func validationOptions(cfg *config.Config) (validate.Options, error) {
	opts := validate.DefaultOptions()

	mode := validateMode
	if mode == "" {
		mode = cfg.Validation.Mode
	}
	switch mode {
	case "", string(validate.ModeSummary):
		opts.Mode = validate.ModeSummary
	case string(validate.ModeDetailed):
		opts.Mode = validate.ModeDetailed
	default:
		return opts, fmt.Errorf("unknown validation mode %q", mode)
	}

	raw := validateTolerance
	if raw == "" {
		raw = cfg.Validation.Tolerance
	}
	if raw != "" {
		tol, err := decimal.NewFromString(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid tolerance %q: %w", raw, err)
		}
		if tol.IsNegative() {
			return opts, fmt.Errorf("tolerance must be non-negative, got %s", tol)
		}
		opts.Tolerance = tol
	}
	return opts, nil
}
