package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/pkg/database"
)

// PostgresSource reads trades from trading.trades
// ⭐ SSOT: 거래 데이터 저장/조회는 여기서만
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a source over db
func NewPostgresSource(db *database.DB) *PostgresSource {
	return &PostgresSource{pool: db.Pool}
}

// Trades returns the trades matching filter, newest entry first
func (r *PostgresSource) Trades(ctx context.Context, filter contracts.TradeFilter) ([]contracts.Trade, error) {
	query := `
		SELECT id, bot_label, side, entry_time, exit_time,
		       entry_price, exit_price, quantity, profit_loss
		FROM trading.trades
		WHERE ($1 = '' OR bot_label = $1)
		  AND ($2::timestamptz IS NULL OR entry_time >= $2)
		  AND ($3::timestamptz IS NULL OR entry_time <= $3)
		ORDER BY entry_time DESC
	`

	rows, err := r.pool.Query(ctx, query, filter.BotLabel, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query trades: %v", contracts.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	trades := make([]contracts.Trade, 0)

	for rows.Next() {
		var (
			t           contracts.Trade
			side        string
			entry, exit time.Time
		)

		err := rows.Scan(
			&t.ID, &t.BotLabel, &side, &entry, &exit,
			&t.EntryPrice, &t.ExitPrice, &t.Quantity, &t.ProfitLoss,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}

		t.Side = contracts.Side(side)
		t.EntryTime = contracts.FormatTimestamp(entry.UTC())
		t.ExitTime = contracts.FormatTimestamp(exit.UTC())
		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return trades, nil
}

// BotLabels returns the distinct bot labels in ascending order
func (r *PostgresSource) BotLabels(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT bot_label FROM trading.trades ORDER BY bot_label`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query bot labels: %v", contracts.ErrSourceUnavailable, err)
	}

	labels, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect bot labels: %w", err)
	}
	return labels, nil
}

// SaveTrades upserts trades in a single batch. Trades with unparseable
// timestamps are rejected before anything is written.
func (r *PostgresSource) SaveTrades(ctx context.Context, trades []contracts.Trade) (int, error) {
	query := `
		INSERT INTO trading.trades (
			id, bot_label, side, entry_time, exit_time,
			entry_price, exit_price, quantity, profit_loss
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			bot_label = EXCLUDED.bot_label,
			side = EXCLUDED.side,
			entry_time = EXCLUDED.entry_time,
			exit_time = EXCLUDED.exit_time,
			entry_price = EXCLUDED.entry_price,
			exit_price = EXCLUDED.exit_price,
			quantity = EXCLUDED.quantity,
			profit_loss = EXCLUDED.profit_loss
	`

	batch := &pgx.Batch{}
	for _, t := range trades {
		entry, ok := t.EntryAt()
		if !ok {
			return 0, fmt.Errorf("trade %s: invalid entry time %q", t.ID, t.EntryTime)
		}
		exit, ok := t.ExitAt()
		if !ok {
			return 0, fmt.Errorf("trade %s: invalid exit time %q", t.ID, t.ExitTime)
		}

		batch.Queue(query,
			t.ID, t.BotLabel, string(t.Side), entry, exit,
			t.EntryPrice, t.ExitPrice, t.Quantity, t.ProfitLoss,
		)
	}

	if batch.Len() == 0 {
		return 0, nil
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to save trades: %w", err)
	}

	return batch.Len(), nil
}
