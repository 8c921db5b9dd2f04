package source

import (
	"context"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/pkg/metrics"
)

type instrumented struct {
	next contracts.TradeSource
	name string
	m    *metrics.Metrics
}

// Instrument counts requests and failures of next under the given source name.
// A nil Metrics returns next unchanged.
func Instrument(next contracts.TradeSource, name string, m *metrics.Metrics) contracts.TradeSource {
	if m == nil {
		return next
	}
	return &instrumented{next: next, name: name, m: m}
}

func (s *instrumented) Trades(ctx context.Context, filter contracts.TradeFilter) ([]contracts.Trade, error) {
	trades, err := s.next.Trades(ctx, filter)
	s.m.RecordSourceRequest(s.name, "trades", err)
	return trades, err
}

func (s *instrumented) BotLabels(ctx context.Context) ([]string, error) {
	labels, err := s.next.BotLabels(ctx)
	s.m.RecordSourceRequest(s.name, "bots", err)
	return labels, err
}
