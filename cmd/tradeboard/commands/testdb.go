package commands

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/threelines/tradeboard/backend/pkg/database"
)

var testDBCmd = &cobra.Command{
	Use:   "test-db",
	Short: "DB 연결 테스트 및 스키마 생성",
	Long: `Connects to DATABASE_URL, prints pool health and creates the
trading.trades table when it is missing.`,
	RunE: runTestDB,
}

func init() {
	rootCmd.AddCommand(testDBCmd)
}

func runTestDB(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Tradeboard Database Connection Test ===")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Printf("✅ Config loaded (ENV: %s)\n", cfg.Env)
	fmt.Printf("   Database URL: %s\n\n", maskPassword(cfg.Database.URL))

	ctx, cancel := commandContext()
	defer cancel()

	db, err := database.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("❌ failed to connect to database: %w", err)
	}
	defer db.Close()
	fmt.Println("✅ Database connection established")

	status, err := db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("❌ health check failed: %w", err)
	}

	fmt.Println("✅ Health Check Results:")
	fmt.Printf("   Healthy: %v\n", status.Healthy)
	fmt.Printf("   Response Time: %v\n", status.ResponseTime)
	fmt.Printf("   Timestamp: %v\n\n", status.Timestamp.Format(time.RFC3339))

	fmt.Println("📊 Connection Pool Statistics:")
	fmt.Printf("   Max Connections: %d\n", status.Stats.MaxConns)
	fmt.Printf("   Total Connections: %d\n", status.Stats.TotalConns)
	fmt.Printf("   Idle Connections: %d\n\n", status.Stats.IdleConns)

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("❌ %w", err)
	}
	fmt.Printf("✅ Schema ready (%s)\n", database.TradesTable)

	return nil
}

// maskPassword hides the password part of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
