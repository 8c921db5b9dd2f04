// Package dashboard assembles what one dashboard view shows: the filtered
// trades, their statistics and the equity series, all computed from a single
// consistent fetch.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/threelines/tradeboard/backend/internal/analytics"
	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/equity"
	"github.com/threelines/tradeboard/backend/pkg/logger"
	"github.com/threelines/tradeboard/backend/pkg/metrics"
)

// Snapshot is one full recomputation for a filter and view mode
type Snapshot struct {
	Filter     contracts.TradeFilter       `json:"filter"`
	View       contracts.ViewMode          `json:"view"`
	Trades     []contracts.Trade           `json:"trades"`
	Report     *contracts.StatisticsReport `json:"statistics"`
	Curve      []contracts.EquityPoint     `json:"equity"`
	Ticks      contracts.AxisTicks         `json:"ticks"`
	ComputedAt time.Time                   `json:"computedAt"`
}

// Service recomputes snapshots from a trade source
// ⭐ SSOT: 대시보드 재계산은 여기서만
type Service struct {
	source  contracts.TradeSource
	engine  *analytics.Engine
	metrics *metrics.Metrics
	logger  *logger.Logger
	now     func() time.Time

	mu     sync.RWMutex
	latest *Snapshot
}

// NewService creates a dashboard service. m may be nil.
func NewService(src contracts.TradeSource, engine *analytics.Engine, m *metrics.Metrics, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		source:  src,
		engine:  engine,
		metrics: m,
		logger:  log,
		now:     time.Now,
	}
}

// Fetch loads the filtered set and the unfiltered universe concurrently.
// A zero filter loads the universe once and uses it for both.
func (s *Service) Fetch(ctx context.Context, filter contracts.TradeFilter) (filtered, all []contracts.Trade, err error) {
	if err := filter.Validate(); err != nil {
		return nil, nil, err
	}

	if filter.IsZero() {
		all, err = s.source.Trades(ctx, filter)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch trades: %w", err)
		}
		return all, all, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		filtered, err = s.source.Trades(gctx, filter)
		if err != nil {
			return fmt.Errorf("fetch filtered trades: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		all, err = s.source.Trades(gctx, contracts.TradeFilter{})
		if err != nil {
			return fmt.Errorf("fetch trade universe: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return filtered, all, nil
}

// Statistics computes the report for filter
func (s *Service) Statistics(ctx context.Context, filter contracts.TradeFilter) (*contracts.StatisticsReport, error) {
	filtered, all, err := s.Fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.report(filter, filtered, all), nil
}

// Equity builds the equity series and axis ticks for filter in view mode
func (s *Service) Equity(ctx context.Context, filter contracts.TradeFilter, view contracts.ViewMode) ([]contracts.EquityPoint, contracts.AxisTicks, error) {
	if err := filter.Validate(); err != nil {
		return nil, contracts.AxisTicks{}, err
	}

	trades, err := s.source.Trades(ctx, filter)
	if err != nil {
		return nil, contracts.AxisTicks{}, fmt.Errorf("fetch trades: %w", err)
	}
	return s.curve(trades, view)
}

// Snapshot recomputes everything a dashboard view shows for filter
func (s *Service) Snapshot(ctx context.Context, filter contracts.TradeFilter, view contracts.ViewMode) (*Snapshot, error) {
	filtered, all, err := s.Fetch(ctx, filter)
	if err != nil {
		return nil, err
	}

	points, ticks, err := s.curve(filtered, view)
	if err != nil {
		return nil, err
	}

	s.metrics.SetTradesLoaded("filtered", len(filtered))
	s.metrics.SetTradesLoaded("universe", len(all))

	return &Snapshot{
		Filter:     filter,
		View:       view,
		Trades:     filtered,
		Report:     s.report(filter, filtered, all),
		Curve:      points,
		Ticks:      ticks,
		ComputedAt: s.now(),
	}, nil
}

// Refresh recomputes the default all-bots daily snapshot and stores it as latest
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	snap, err := s.Snapshot(ctx, contracts.TradeFilter{}, contracts.ViewDaily)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	s.metrics.SetPerformance("all", snap.Report.TotalProfitLoss, snap.Report.WinRate)

	s.logger.WithFields(map[string]interface{}{
		"trades": len(snap.Trades),
		"points": len(snap.Curve),
	}).Debug("Dashboard snapshot refreshed")

	return snap, nil
}

// Latest returns the most recent refreshed snapshot, or nil before the first refresh
func (s *Service) Latest() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// BotLabels lists the bots known to the source
func (s *Service) BotLabels(ctx context.Context) ([]string, error) {
	labels, err := s.source.BotLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch bot labels: %w", err)
	}
	return labels, nil
}

// Trades lists the trades matching filter as the source returns them
func (s *Service) Trades(ctx context.Context, filter contracts.TradeFilter) ([]contracts.Trade, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.source.Trades(ctx, filter)
}

func (s *Service) report(filter contracts.TradeFilter, filtered, all []contracts.Trade) *contracts.StatisticsReport {
	start := time.Now()
	defer func() { s.metrics.ObserveCompute("statistics", time.Since(start)) }()

	return s.engine.Compute(analytics.Request{
		Filtered:    filtered,
		All:         all,
		SelectedBot: filter.BotLabel,
		WindowStart: filter.StartDate,
	})
}

func (s *Service) curve(trades []contracts.Trade, view contracts.ViewMode) ([]contracts.EquityPoint, contracts.AxisTicks, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveCompute("equity", time.Since(start)) }()

	points, err := equity.BuildCurve(trades, view)
	if err != nil {
		return nil, contracts.AxisTicks{}, err
	}
	return points, equity.SelectTicks(points, view), nil
}
