// Package job contains the scheduled reconciliation of orphaned uploads.
package job

import (
	"context"

	"go.uber.org/zap"

	"drawing-review-api/internal/client"
	"drawing-review-api/internal/metrics"
	"drawing-review-api/internal/repository"
)

// ReconcileJob retries the compensating delete for uploads whose blob could
// not be removed after a failed submission commit
type ReconcileJob struct {
	orphanRepo repository.OrphanRepository
	s3Client   client.S3ClientInterface
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewReconcileJob creates a new ReconcileJob instance
func NewReconcileJob(
	orphanRepo repository.OrphanRepository,
	s3Client client.S3ClientInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ReconcileJob {
	return &ReconcileJob{
		orphanRepo: orphanRepo,
		s3Client:   s3Client,
		metrics:    m,
		logger:     logger,
	}
}

// Run executes one reconciliation pass. Each unresolved orphan gets another
// delete attempt; resolved rows are stamped so they are not retried.
func (j *ReconcileJob) Run() {
	ctx := context.Background()

	orphans, err := j.orphanRepo.FindUnresolved(ctx)
	if err != nil {
		j.logger.Error("Failed to load orphaned uploads", zap.Error(err))
		return
	}

	if len(orphans) == 0 {
		return
	}

	j.logger.Info("Reconciling orphaned uploads", zap.Int("count", len(orphans)))

	successCount := 0
	failCount := 0

	for _, orphan := range orphans {
		if err := j.s3Client.DeleteFile(ctx, orphan.FileKey); err != nil {
			j.logger.Warn("Orphaned upload delete failed, will retry",
				zap.String("orphan_id", orphan.ID.String()),
				zap.String("file_key", orphan.FileKey),
				zap.Error(err),
			)
			failCount++
			continue
		}

		if err := j.orphanRepo.MarkResolved(ctx, orphan.ID); err != nil {
			j.logger.Error("Failed to mark orphaned upload resolved",
				zap.String("orphan_id", orphan.ID.String()),
				zap.Error(err),
			)
			failCount++
			continue
		}

		if j.metrics != nil {
			j.metrics.IncrementOrphanReconciled()
		}
		successCount++
	}

	j.logger.Info("Reconciliation pass completed",
		zap.Int("total", len(orphans)),
		zap.Int("resolved", successCount),
		zap.Int("remaining", failCount),
	)
}
