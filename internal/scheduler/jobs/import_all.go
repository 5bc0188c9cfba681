package jobs

import (
	"context"
	"fmt"

	"dealscout/internal/ingest"
	"dealscout/pkg/logger"
)

// ImportAllJob runs the ingestion pipeline across every configured
// source each night.
type ImportAllJob struct {
	coordinator *ingest.Coordinator
	logger      *logger.Logger
}

// NewImportAllJob creates the nightly import job.
func NewImportAllJob(coordinator *ingest.Coordinator, log *logger.Logger) *ImportAllJob {
	return &ImportAllJob{
		coordinator: coordinator,
		logger:      log.WithField("job", "import-all"),
	}
}

// Name returns the job name.
func (j *ImportAllJob) Name() string {
	return "import-all"
}

// Schedule runs nightly at 3 AM, after the sources have refreshed their
// own feeds.
func (j *ImportAllJob) Schedule() string {
	return "0 0 3 * * *"
}

// Run executes one import across all sources. A failed source fails
// the job (so the scheduler retries) but never blocks the others.
func (j *ImportAllJob) Run(ctx context.Context) error {
	results := j.coordinator.Run(ctx, ingest.Filters{})

	var failed []string
	for _, result := range results {
		j.logger.WithFields(map[string]interface{}{
			"source":   result.Source,
			"imported": result.Imported,
			"skipped":  result.Skipped,
			"errors":   result.Errors,
		}).Info("Source import finished")

		if result.Err != nil {
			failed = append(failed, result.Source)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("sources failed: %v", failed)
	}

	return nil
}
