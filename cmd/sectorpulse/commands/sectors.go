package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// sectorsCmd represents the sectors command
var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "섹터 목록 조회",
	Long: `EastMoney 섹터 지수 목록을 조회합니다.

Example:
  go run ./cmd/sectorpulse sectors`,
	RunE: runSectors,
}

func init() {
	rootCmd.AddCommand(sectorsCmd)
}

func runSectors(cmd *cobra.Command, args []string) error {
	s, err := initStack()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	names, err := s.directory.Sectors(ctx)
	if err != nil {
		return fmt.Errorf("list sectors: %w", err)
	}

	fmt.Printf("Known sectors (%d):\n", len(names))
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}

	return nil
}
