package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/jcastellanos-dev/mercata-backend/internal/partition"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
)

func TestRecategorizeJobRunsPartitioner(t *testing.T) {
	fake := &fakeRecategorizer{report: &partition.RecategorizeReport{Scanned: 3, Updated: 3}}
	job, err := NewRecategorizeJob(RecategorizeJobParams{
		Logger:      logger.New(logger.Options{ServiceName: "test"}),
		Partitioner: fake,
		BatchSize:   25,
	})
	if err != nil {
		t.Fatalf("NewRecategorizeJob: %v", err)
	}
	if job.Name() != "recategorize" {
		t.Fatalf("unexpected job name: %s", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fake.batchSize != 25 {
		t.Fatalf("expected batch size 25, got %d", fake.batchSize)
	}
}

func TestRecategorizeJobDefaultsBatchSize(t *testing.T) {
	fake := &fakeRecategorizer{report: &partition.RecategorizeReport{}}
	job, err := NewRecategorizeJob(RecategorizeJobParams{
		Logger:      logger.New(logger.Options{ServiceName: "test"}),
		Partitioner: fake,
	})
	if err != nil {
		t.Fatalf("NewRecategorizeJob: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fake.batchSize != defaultRecategorizeBatch {
		t.Fatalf("expected default batch size, got %d", fake.batchSize)
	}
}

func TestRecategorizeJobSurfacesPerOrderFailures(t *testing.T) {
	fake := &fakeRecategorizer{report: &partition.RecategorizeReport{
		Scanned:  2,
		Updated:  1,
		Failures: errors.New("order x: boom"),
	}}
	job, err := NewRecategorizeJob(RecategorizeJobParams{
		Logger:      logger.New(logger.Options{ServiceName: "test"}),
		Partitioner: fake,
	})
	if err != nil {
		t.Fatalf("NewRecategorizeJob: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected failure collection to surface")
	}
}

type fakeRecategorizer struct {
	report    *partition.RecategorizeReport
	err       error
	batchSize int
}

func (f *fakeRecategorizer) Recategorize(_ context.Context, batchSize int) (*partition.RecategorizeReport, error) {
	f.batchSize = batchSize
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}
