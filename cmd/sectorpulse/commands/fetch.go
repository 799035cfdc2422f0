package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/sectorpulse/internal/marketdata"
	"github.com/wonny/sectorpulse/pkg/database"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "가격 이력 수집",
	Long: `섹터 지수 일봉을 수집해 데이터베이스에 저장합니다.

DB_ENABLED=true 와 DATABASE_URL 설정이 필요합니다.

Example:
  go run ./cmd/sectorpulse fetch --sectors 银行,航空机场
  go run ./cmd/sectorpulse fetch --sectors 银行 --start 20250101 --end 20250331`,
	RunE: runFetch,
}

var (
	fetchSectors string
	fetchStart   string
	fetchEnd     string
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	// Flags
	fetchCmd.Flags().StringVar(&fetchSectors, "sectors", "", "쉼표로 구분한 섹터 이름 (비우면 watchlist 사용)")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "시작일 YYYYMMDD (비우면 기본 기간)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "종료일 YYYYMMDD (비우면 기본 기간)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	fmt.Println("=== SectorPulse History Fetch ===")

	s, err := initStack()
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.cfg.Database.Enabled {
		return fmt.Errorf("fetch requires DB_ENABLED=true")
	}

	db, err := database.New(s.cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	repo := marketdata.NewRepository(db.Pool)

	sectors := splitCSV(fetchSectors)
	if len(sectors) == 0 {
		sectors = s.cfg.Watchlist
	}
	if len(sectors) == 0 {
		return fmt.Errorf("no sectors given: use --sectors or set WATCHLIST_SECTORS")
	}

	window := s.registry.DefaultDateRange()
	start, end := fetchStart, fetchEnd
	if start == "" {
		start = window.StartDate
	}
	if end == "" {
		end = window.EndDate
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	saved := 0
	for _, sector := range sectors {
		history, err := s.provider.FetchPriceHistory(ctx, sector, start, end)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", sector, err)
			continue
		}
		if err := repo.SaveHistory(ctx, sector, history); err != nil {
			return fmt.Errorf("save history for %s: %w", sector, err)
		}
		fmt.Printf("✅ %s: %d bars saved\n", sector, len(history))
		saved++
	}

	fmt.Printf("\nDone: %d/%d sectors stored (%s ~ %s)\n", saved, len(sectors), start, end)
	return nil
}
