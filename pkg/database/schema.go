package database

import (
	"context"
	"fmt"
)

// TradesTable is the fully qualified closed-trade table
const TradesTable = "trading.trades"

const schemaDDL = `
CREATE SCHEMA IF NOT EXISTS trading;

CREATE TABLE IF NOT EXISTS trading.trades (
	id            TEXT PRIMARY KEY,
	bot_label     TEXT NOT NULL,
	side          TEXT NOT NULL,
	entry_time    TIMESTAMPTZ NOT NULL,
	exit_time     TIMESTAMPTZ NOT NULL,
	entry_price   DOUBLE PRECISION NOT NULL,
	exit_price    DOUBLE PRECISION NOT NULL,
	quantity      DOUBLE PRECISION NOT NULL,
	profit_loss   DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_bot_entry ON trading.trades (bot_label, entry_time);
CREATE INDEX IF NOT EXISTS idx_trades_exit ON trading.trades (exit_time);
`

// EnsureSchema creates the trading schema when it is missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
