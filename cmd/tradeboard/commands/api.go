package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/threelines/tradeboard/backend/internal/api"
	"github.com/threelines/tradeboard/backend/internal/api/handlers"
	"github.com/threelines/tradeboard/backend/internal/realtime/hub"
	"github.com/threelines/tradeboard/backend/internal/scheduler"
	"github.com/threelines/tradeboard/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `Starts the dashboard REST API and websocket push.

이 명령어는:
- HTTP API 서버 시작
- POLL_INTERVAL 마다 대시보드 스냅샷 재계산
- 재계산 결과를 웹소켓 구독자에게 전송

Endpoints:
  GET  /health            - Health check
  GET  /metrics           - Prometheus metrics
  GET  /api/trades        - 거래 목록 (botLabel, startDate, endDate)
  GET  /api/bots          - 봇 목록
  GET  /api/statistics    - 성과 통계 (format=display)
  GET  /api/equity        - 에쿼티 커브 (view, from, to)
  GET  /api/dashboard     - 최신 스냅샷
  GET  /api/jobs          - 스케줄러 상태
  GET  /ws/dashboard      - 스냅샷 푸시

Example:
  go run ./cmd/tradeboard api
  go run ./cmd/tradeboard api --port 8081`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Tradeboard API Server ===")

	ctx := context.Background()

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}
	log := d.log

	log.WithFields(map[string]interface{}{
		"port":   d.cfg.Port,
		"env":    d.cfg.Env,
		"source": d.cfg.Source.Kind,
	}).Info("Initializing API server")

	// Websocket hub and publishers
	stream := hub.New(log, d.metrics)
	defer stream.Close()

	publishers := []scheduler.Publisher{stream}
	if d.cache != nil {
		publishers = append(publishers, hub.NewRedisPublisher(d.cache))
	}

	// Scheduler
	sched := scheduler.New(log)
	refresh := scheduler.NewRefreshJob(d.service, d.cfg.Source.PollInterval, log, publishers...)
	if err := sched.AddJob(refresh); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}
	if err := sched.RunJob(refresh.Name()); err != nil {
		log.WithError(err).Warn("Initial dashboard refresh failed")
	}
	sched.Start()
	defer sched.Stop()

	// Health checks
	checks := map[string]handlers.HealthCheck{
		"source": func(ctx context.Context) error {
			_, err := d.service.BotLabels(ctx)
			return err
		},
		"redis": d.redis.HealthCheck,
	}
	if d.db != nil {
		checks["database"] = func(ctx context.Context) error {
			_, err := d.db.HealthCheck(ctx)
			return err
		}
	}

	var limiter *redis.RateLimiter
	if d.redis.Enabled() {
		limiter = redis.NewRateLimiter(d.redis, cachePrefix)
	}

	router := api.NewRouter(api.RouterDeps{
		Trades:    handlers.NewTradeHandler(d.service, log),
		Analytics: handlers.NewAnalyticsHandler(d.service, log),
		System:    handlers.NewSystemHandler("tradeboard-api", checks, sched),
		Stream:    stream,
		Metrics:   d.metrics,
		Limiter:   limiter,
		Logger:    log,
	})

	server := api.New(d.cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Printf("   Trade source: %s, polling every %s\n", d.cfg.Source.Kind, d.cfg.Source.PollInterval)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
