package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/sectorpulse/internal/report"
	"github.com/wonny/sectorpulse/internal/sectorsignal"
)

// signalsCmd represents the signals command
var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "섹터 시그널 계산",
	Long: `섹터 지수에 대해 전략별 매매 시그널을 계산합니다.

이 명령어는:
- EastMoney 섹터 지수 일봉 조회
- 전략별 시그널 계산 (MACD, RSI, BollingerBands, MovingAverage)
- 섹터별 최신 시그널 요약 출력

Example:
  go run ./cmd/sectorpulse signals --sectors 银行,航空机场
  go run ./cmd/sectorpulse signals --sectors 银行 --strategies RSI,MACD
  go run ./cmd/sectorpulse signals --sectors 银行 --start 20250101 --end 20250331 --report`,
	RunE: runSignals,
}

var (
	signalSectors    string
	signalStrategies string
	signalStart      string
	signalEnd        string
	signalReport     bool
)

func init() {
	rootCmd.AddCommand(signalsCmd)

	// Flags
	signalsCmd.Flags().StringVar(&signalSectors, "sectors", "", "쉼표로 구분한 섹터 이름 (비우면 watchlist 사용)")
	signalsCmd.Flags().StringVar(&signalStrategies, "strategies", "", "쉼표로 구분한 전략 이름 (비우면 전체)")
	signalsCmd.Flags().StringVar(&signalStart, "start", "", "시작일 YYYYMMDD (비우면 기본 기간)")
	signalsCmd.Flags().StringVar(&signalEnd, "end", "", "종료일 YYYYMMDD (비우면 기본 기간)")
	signalsCmd.Flags().BoolVar(&signalReport, "report", false, "마크다운 리포트 저장")
}

func runSignals(cmd *cobra.Command, args []string) error {
	fmt.Println("=== SectorPulse Signal Screening ===")

	s, err := initStack()
	if err != nil {
		return err
	}
	defer s.Close()

	sectors := splitCSV(signalSectors)
	if len(sectors) == 0 {
		sectors = s.cfg.Watchlist
	}
	if len(sectors) == 0 {
		return fmt.Errorf("no sectors given: use --sectors or set WATCHLIST_SECTORS")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.service.CalculateSectorSignals(ctx, sectorsignal.Request{
		Sectors:    sectors,
		Strategies: splitCSV(signalStrategies),
		StartDate:  signalStart,
		EndDate:    signalEnd,
	})
	if err != nil {
		return fmt.Errorf("calculate signals: %w", err)
	}

	summary := sectorsignal.Summarize(result)

	fmt.Println()
	sectorsignal.PrintSignalResults(os.Stdout, result)
	fmt.Println()
	sectorsignal.PrintSignalSummary(os.Stdout, summary)

	if signalReport {
		writer := report.NewWriter(s.cfg.OutputDir, s.log)
		path, err := writer.WriteSignalReport(result, summary)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("\n✅ Report saved: %s\n", path)
	}

	return nil
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
