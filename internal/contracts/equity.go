package contracts

import (
	"fmt"
	"strings"
)

// ViewMode selects equity-curve granularity
type ViewMode string

const (
	ViewDaily    ViewMode = "daily"
	ViewPerTrade ViewMode = "per-trade"
)

// ParseViewMode accepts "daily", "per-trade" and the short alias "trade"
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ViewDaily):
		return ViewDaily, nil
	case string(ViewPerTrade), "trade", "per_trade":
		return ViewPerTrade, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
}

// EquityPoint is one point of the cumulative equity series
// ⭐ SSOT: 에쿼티 커브 포인트
type EquityPoint struct {
	Index            int      `json:"index"`     // 1-based trade position, 0 in daily mode
	Timestamp        int64    `json:"timestamp"` // unix milliseconds
	CumulativeEquity float64  `json:"cumulativeEquity"`
	Label            string   `json:"label"` // date in daily mode, trade id in per-trade mode
	DailyPnL         *float64 `json:"dailyPnL,omitempty"`
}

// Tick is one axis tick of a rendered series
type Tick struct {
	Key   int64  `json:"key"` // timestamp (daily) or trade index (per-trade)
	Label string `json:"label"`
}

// AxisTicks is the tick subset chosen for a series
type AxisTicks struct {
	Stride int    `json:"stride"`
	Ticks  []Tick `json:"ticks"`
}
