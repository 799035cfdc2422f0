package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/sectorpulse/internal/api"
	"github.com/wonny/sectorpulse/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 시그널 계산 엔드포인트 제공
- 웹소켓 실시간 스트림 제공

Endpoints:
  GET  /health        - Health check
  POST /api/signals   - 시그널 배치 계산
  GET  /api/config    - 전략 설정 조회
  GET  /api/sectors   - 섹터 목록 조회
  GET  /ws/signals    - 시그널 스트림 (websocket)

Example:
  go run ./cmd/sectorpulse api
  go run ./cmd/sectorpulse api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (비우면 PORT 설정값)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== SectorPulse API Server ===")

	s, err := initStack()
	if err != nil {
		return err
	}
	defer s.Close()

	// Override port if flag is set
	if apiPort != "" {
		s.cfg.Port = apiPort
	}

	// Create handler and router
	signalHandler := handlers.NewSignalHandler(s.service, s.registry, s.directory, s.log)
	router := api.NewRouter(signalHandler, s.log)

	// Create server
	server := api.New(s.cfg, s.log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			s.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", s.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/signals")
	fmt.Println("  GET  /api/config")
	fmt.Println("  GET  /api/sectors")
	fmt.Println("  GET  /ws/signals")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	s.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("Server stopped")
	return nil
}
