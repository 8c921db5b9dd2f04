package contracts

import "context"

// TradeSource retrieves closed trades
// ⭐ SSOT: 거래 데이터 조회 인터페이스 (HTTP / Postgres / File)
type TradeSource interface {
	// Trades returns the trades matching filter. A zero filter returns the full universe.
	Trades(ctx context.Context, filter TradeFilter) ([]Trade, error)

	// BotLabels returns the distinct bot labels known to the source
	BotLabels(ctx context.Context) ([]string, error)
}
