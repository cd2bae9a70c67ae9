// Package validate - batch validation over many legacy files
package validate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quotecalc/core/types"
	"quotecalc/internal/logging"
)

// BatchResult aggregates a validation run over many files
type BatchResult struct {
	// RunID identifies this run in reports and logs
	RunID string `json:"run_id"`

	// GeneratedAt is when the run finished
	GeneratedAt time.Time `json:"generated_at"`

	// Mode and Tolerance echo the run configuration
	Mode      Mode            `json:"mode"`
	Tolerance decimal.Decimal `json:"tolerance"`

	// Files holds per-file results in input order
	Files []types.ValidationResult `json:"files"`

	// PassedCount and FailedCount summarize Files
	PassedCount int `json:"passed_count"`
	FailedCount int `json:"failed_count"`
}

// PassRate returns the fraction of files that passed, in [0,1]
func (b *BatchResult) PassRate() float64 {
	if len(b.Files) == 0 {
		return 0
	}
	return float64(b.PassedCount) / float64(len(b.Files))
}

// ValidateBatch validates many files concurrently. Files are independent:
// each worker owns its own engine run and no state is shared, so the only
// coordination is the worker limit. A failing file never aborts the
// batch; its error is recorded in its result.
func (v *Validator) ValidateBatch(ctx context.Context, paths []string, settings *types.OrganizationSettings, workers int) (*BatchResult, error) {
	if workers <= 0 {
		workers = 4
	}

	batch := &BatchResult{
		RunID:     uuid.NewString(),
		Mode:      v.opts.Mode,
		Tolerance: v.opts.Tolerance,
		Files:     make([]types.ValidationResult, len(paths)),
	}

	logging.Info("batch validation started",
		zap.String("run_id", batch.RunID),
		zap.Int("files", len(paths)),
		zap.String("mode", string(v.opts.Mode)),
		zap.Int("workers", workers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch.Files[i] = *v.ValidateFile(path, settings)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range batch.Files {
		if batch.Files[i].Passed && batch.Files[i].Err == "" {
			batch.PassedCount++
		} else {
			batch.FailedCount++
		}
	}
	batch.GeneratedAt = time.Now().UTC()

	logging.Info("batch validation finished",
		zap.String("run_id", batch.RunID),
		zap.Int("passed", batch.PassedCount),
		zap.Int("failed", batch.FailedCount))
	return batch, nil
}
