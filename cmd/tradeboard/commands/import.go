package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/source"
	"github.com/threelines/tradeboard/backend/pkg/database"
)

var importCmd = &cobra.Command{
	Use:   "import <trades.json|trades.csv>",
	Short: "거래 파일을 PostgreSQL 로 적재",
	Long: `Loads a JSON or CSV trade export into trading.trades.
Existing rows with the same id are updated.

Example:
  go run ./cmd/tradeboard import ./exports/trades.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required for import")
	}

	ctx, cancel := commandContext()
	defer cancel()

	trades, err := source.NewFileSource(args[0]).Trades(ctx, contracts.TradeFilter{})
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	db, err := database.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	n, err := importTrades(ctx, db, trades)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Imported %d trades into %s\n", n, database.TradesTable)
	return nil
}

func importTrades(ctx context.Context, db *database.DB, trades []contracts.Trade) (int, error) {
	if err := db.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	return source.NewPostgresSource(db).SaveTrades(ctx, trades)
}
