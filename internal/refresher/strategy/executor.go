package strategy

import (
	"context"

	"portfolio-tracker/internal/entity"
)

// Execution outcome markers recorded per symbol in a strategy's JSON output.
const (
	SUCCESS = "SUCCESS"
	FAILED  = "FAILED"
	SKIPPED = "SKIPPED"
)

// JobExecutionStrategy defines the interface for different job execution strategies.
type JobExecutionStrategy interface {
	Execute(ctx context.Context, job *entity.RefreshJob) (string, error)
	GetType() entity.JobType
}
