package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/pkg/logger"
)

// Writer renders batch results as Markdown reports under
// <outputDir>/<YYYYMMDD>/.
// ⭐ SSOT: 리포트 파일 생성은 이 패키지에서만
type Writer struct {
	outputDir string
	logger    *logger.Logger
	now       func() time.Time
}

// NewWriter creates a report writer rooted at outputDir.
func NewWriter(outputDir string, log *logger.Logger) *Writer {
	return &Writer{
		outputDir: outputDir,
		logger:    log.WithField("module", "report"),
		now:       time.Now,
	}
}

// WithClock overrides the clock. Test use.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// WriteSignalReport writes one report file and returns its path.
func (w *Writer) WriteSignalReport(result *contracts.SectorSignalResult, summary contracts.SignalSummary) (string, error) {
	now := w.now()
	dir := filepath.Join(w.outputDir, now.Format(contracts.DateFormat))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("signals_%s.md", now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(w.render(result, summary, now)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	w.logger.WithField("path", path).Info("Wrote signal report")
	return path, nil
}

func (w *Writer) render(result *contracts.SectorSignalResult, summary contracts.SignalSummary, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Sector Signal Report\n\n")
	fmt.Fprintf(&b, "**Generated**: %s\n", now.Format("2006-01-02 15:04:05"))
	if result != nil {
		fmt.Fprintf(&b, "**Window**: %s ~ %s\n", result.StartDate, result.EndDate)
	}
	fmt.Fprintf(&b, "**Sectors**: %d\n", summary.TotalSectors)
	fmt.Fprintf(&b, "**Strategies**: %s\n\n", strings.Join(summary.StrategiesUsed, ", "))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Signal | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| BUY | %d |\n", summary.BuyCount)
	fmt.Fprintf(&b, "| SELL | %d |\n", summary.SellCount)
	fmt.Fprintf(&b, "| HOLD | %d |\n\n", summary.HoldCount)

	if len(summary.MajorityBuySectors) > 0 {
		fmt.Fprintf(&b, "**Majority buy**: %s\n\n", strings.Join(summary.MajorityBuySectors, ", "))
	}
	if len(summary.MajoritySellSectors) > 0 {
		fmt.Fprintf(&b, "**Majority sell**: %s\n\n", strings.Join(summary.MajoritySellSectors, ", "))
	}

	if result == nil || result.Empty() {
		b.WriteString("No signals were calculated in this run.\n")
		return b.String()
	}

	b.WriteString("## Latest Signals\n\n")
	b.WriteString("| Sector | Strategy | Signal | Date |\n|---|---|---|---|\n")
	for _, sector := range result.SectorOrder {
		for _, r := range result.SectorSignals[sector] {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", sector, r.StrategyName, r.LatestSignal.Signal, r.LatestSignal.Date)
		}
	}
	b.WriteString("\n")

	if len(result.Failures) > 0 {
		b.WriteString("## Skipped Pairs\n\n")
		b.WriteString("| Sector | Strategy | Reason |\n|---|---|---|\n")
		for _, f := range result.Failures {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", f.SectorName, f.StrategyName, f.Reason)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Cleanup removes report date directories older than keepDays. It returns the
// removed directory names.
func (w *Writer) Cleanup(keepDays int) ([]string, error) {
	entries, err := os.ReadDir(w.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read output dir: %w", err)
	}

	cutoff := w.now().AddDate(0, 0, -keepDays).Format(contracts.DateFormat)

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || len(name) != 8 {
			continue
		}
		if _, err := time.Parse(contracts.DateFormat, name); err != nil {
			continue
		}
		if name >= cutoff {
			continue
		}
		if err := os.RemoveAll(filepath.Join(w.outputDir, name)); err != nil {
			return removed, fmt.Errorf("remove %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	sort.Strings(removed)

	if len(removed) > 0 {
		w.logger.WithField("removed", len(removed)).Info("Cleaned up old reports")
	}
	return removed, nil
}
