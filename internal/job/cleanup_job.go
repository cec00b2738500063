package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"video-idea-api/internal/repository"
)

// CleanupJob removes used comments that have aged past the retention window.
// Used comments already contributed to ideas and are only kept for browsing.
type CleanupJob struct {
	commentRepo repository.CommentRepository
	retention   time.Duration
	logger      *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	commentRepo repository.CommentRepository,
	retention time.Duration,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		commentRepo: commentRepo,
		retention:   retention,
		logger:      logger,
	}
}

// Run executes one cleanup pass. Implements cron.Job.
func (j *CleanupJob) Run() {
	ctx := context.Background()
	cutoff := time.Now().Add(-j.retention)

	j.logger.Info("Starting cleanup job for used comments",
		zap.Time("cutoff", cutoff),
	)

	deleted, err := j.commentRepo.DeleteUsedOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to delete used comments",
			zap.Error(err),
		)
		return
	}

	if deleted == 0 {
		j.logger.Info("No used comments past retention")
		return
	}

	j.logger.Info("Cleanup job completed",
		zap.Int64("deleted", deleted),
	)
}
