package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sectorpulse",
	Short: "SectorPulse - 섹터 시그널 스크리닝 시스템",
	Long: `SectorPulse Unified CLI

섹터 지수 기반 기술적 시그널 스크리닝 시스템.
이동평균 / RSI / MACD / 볼린저밴드 전략으로 섹터별 매매 시그널을 계산합니다.

Usage:
  go run ./cmd/sectorpulse [command]

Examples:
  go run ./cmd/sectorpulse signals --sectors 银行,航空机场
  go run ./cmd/sectorpulse config
  go run ./cmd/sectorpulse api
  go run ./cmd/sectorpulse scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
