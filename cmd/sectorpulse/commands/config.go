package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/sectorpulse/internal/sectorsignal"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "전략 설정 조회",
	Long: `활성화된 전략 설정을 출력합니다.

YAML 오버라이드(STRATEGY_CONFIG_PATH)가 설정되어 있으면
적용된 값이 표시됩니다.

Example:
  go run ./cmd/sectorpulse config`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	s, err := initStack()
	if err != nil {
		return err
	}
	defer s.Close()

	sectorsignal.PrintConfigInfo(os.Stdout, s.registry)

	defaultRange := s.registry.DefaultDateRange()
	fmt.Printf("\nDefault range: %s ~ %s\n", defaultRange.StartDate, defaultRange.EndDate)

	hash, err := s.registry.Hash()
	if err != nil {
		return fmt.Errorf("hash strategy config: %w", err)
	}
	fmt.Printf("Config hash:   %s\n", hash)

	return nil
}
