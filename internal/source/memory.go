package source

import (
	"context"
	"sync"

	"github.com/threelines/tradeboard/backend/internal/contracts"
)

// MemorySource serves a fixed trade list; used by tests and the CLI replay
type MemorySource struct {
	mu     sync.RWMutex
	trades []contracts.Trade
	err    error
}

// NewMemorySource creates a source over a copy of trades
func NewMemorySource(trades []contracts.Trade) *MemorySource {
	s := &MemorySource{}
	s.Replace(trades)
	return s
}

// Replace swaps the served trade list
func (s *MemorySource) Replace(trades []contracts.Trade) {
	cp := make([]contracts.Trade, len(trades))
	copy(cp, trades)

	s.mu.Lock()
	s.trades = cp
	s.mu.Unlock()
}

// FailWith makes every call return err until cleared with nil
func (s *MemorySource) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Trades returns the matching trades in insertion order
func (s *MemorySource) Trades(_ context.Context, filter contracts.TradeFilter) ([]contracts.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}
	return filter.Apply(s.trades), nil
}

// BotLabels returns the distinct bot labels
func (s *MemorySource) BotLabels(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}
	return distinctSorted(s.trades), nil
}
