package cron

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jcastellanos-dev/mercata-backend/internal/partition"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
)

const defaultRecategorizeBatch = 500

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type recategorizer interface {
	Recategorize(ctx context.Context, batchSize int) (*partition.RecategorizeReport, error)
}

// RecategorizeJobParams configure the order type backfill job.
type RecategorizeJobParams struct {
	Logger      *logger.Logger
	Partitioner recategorizer
	BatchSize   int
}

// NewRecategorizeJob builds the cron job that backfills order_type on legacy
// rows that predate partitioning.
func NewRecategorizeJob(params RecategorizeJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Partitioner == nil {
		return nil, fmt.Errorf("partitioner required")
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultRecategorizeBatch
	}
	return &recategorizeJob{
		logg:        params.Logger,
		partitioner: params.Partitioner,
		batchSize:   batchSize,
	}, nil
}

type recategorizeJob struct {
	logg        *logger.Logger
	partitioner recategorizer
	batchSize   int
}

func (j *recategorizeJob) Name() string { return "recategorize" }

func (j *recategorizeJob) Run(ctx context.Context) error {
	report, err := j.partitioner.Recategorize(ctx, j.batchSize)
	if err != nil {
		return fmt.Errorf("recategorize orders: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"scanned": report.Scanned,
		"updated": report.Updated,
	})
	j.logg.Info(logCtx, "recategorize pass complete")
	return report.Failures
}
