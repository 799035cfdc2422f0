package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/report"
	"github.com/wonny/sectorpulse/internal/sectorsignal"
	"github.com/wonny/sectorpulse/pkg/config"
	"github.com/wonny/sectorpulse/pkg/logger"
)

// DailySignalJob runs the watchlist batch after the close and writes a
// Markdown report.
// ⭐ SSOT: 일일 시그널 배치 스케줄은 이 Job에서만
type DailySignalJob struct {
	service  *sectorsignal.Service
	writer   *report.Writer
	calendar contracts.TradingCalendar
	config   *config.Config
	logger   *logger.Logger
	now      func() time.Time
}

// NewDailySignalJob creates a new daily signal job
func NewDailySignalJob(
	service *sectorsignal.Service,
	writer *report.Writer,
	calendar contracts.TradingCalendar,
	cfg *config.Config,
	log *logger.Logger,
) *DailySignalJob {
	return &DailySignalJob{
		service:  service,
		writer:   writer,
		calendar: calendar,
		config:   cfg,
		logger:   log,
		now:      time.Now,
	}
}

// Name returns the job name
func (j *DailySignalJob) Name() string {
	return "daily_signals"
}

// Schedule returns the cron schedule from configuration
func (j *DailySignalJob) Schedule() string {
	return j.config.Scheduler.Spec
}

// Run executes the watchlist batch. Non-trading days are skipped without
// error.
func (j *DailySignalJob) Run(ctx context.Context) error {
	today := j.now().Format(contracts.DateFormat)
	if !j.calendar.IsTradingDay(today) {
		j.logger.WithField("date", today).Info("Not a trading day, skipping signal batch")
		return nil
	}

	if len(j.config.Watchlist) == 0 {
		j.logger.Warn("Watchlist is empty, nothing to screen")
		return nil
	}

	j.logger.WithField("sectors", len(j.config.Watchlist)).Info("Starting daily signal batch")

	result, err := j.service.CalculateSectorSignals(ctx, sectorsignal.Request{
		Sectors: j.config.Watchlist,
	})
	if err != nil {
		return fmt.Errorf("calculate signals: %w", err)
	}

	summary := sectorsignal.Summarize(result)
	path, err := j.writer.WriteSignalReport(result, summary)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"sectors":  summary.TotalSectors,
		"signals":  summary.TotalSignals(),
		"failures": len(result.Failures),
		"report":   path,
	}).Info("Daily signal batch completed")
	return nil
}
