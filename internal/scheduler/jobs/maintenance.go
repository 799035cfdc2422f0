package jobs

import (
	"context"

	"github.com/wonny/sectorpulse/internal/report"
	"github.com/wonny/sectorpulse/pkg/logger"
)

// ReportCleanupJob prunes report directories past the retention window.
type ReportCleanupJob struct {
	writer   *report.Writer
	keepDays int
	logger   *logger.Logger
}

// NewReportCleanupJob creates a new report cleanup job
func NewReportCleanupJob(writer *report.Writer, keepDays int, log *logger.Logger) *ReportCleanupJob {
	return &ReportCleanupJob{
		writer:   writer,
		keepDays: keepDays,
		logger:   log,
	}
}

// Name returns the job name
func (j *ReportCleanupJob) Name() string {
	return "report_cleanup"
}

// Schedule returns the cron schedule (daily at 1 AM)
func (j *ReportCleanupJob) Schedule() string {
	return "0 0 1 * * *"
}

// Run executes the report cleanup
func (j *ReportCleanupJob) Run(ctx context.Context) error {
	removed, err := j.writer.Cleanup(j.keepDays)
	if err != nil {
		return err
	}

	if len(removed) > 0 {
		j.logger.WithField("removed", len(removed)).Info("Report cleanup completed")
	}
	return nil
}
