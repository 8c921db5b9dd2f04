// Package equity builds the cumulative equity series shown on the dashboard chart.
package equity

import (
	"math"
	"strconv"
	"time"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/tradeset"
)

// ExcludedWeekday is dropped from the chart. Only Saturday; Sunday sessions count.
const ExcludedWeekday = time.Saturday

const (
	minTicks          = 4
	maxTicks          = 8
	perTradeTickCount = 8
)

// BuildCurve turns trades into the cumulative equity series for mode.
// Trades exiting on ExcludedWeekday are dropped first, the rest are ordered by
// exit time. Cumulative values always cover the whole input, so callers that
// zoom into a sub-range (see Window) never change them.
// ⭐ SSOT: 에쿼티 커브 생성은 여기서만
func BuildCurve(trades []contracts.Trade, mode contracts.ViewMode) ([]contracts.EquityPoint, error) {
	sorted := tradeset.SortByExit(excludeWeekday(trades))

	switch mode {
	case contracts.ViewDaily:
		return daily(sorted), nil
	case contracts.ViewPerTrade:
		return perTrade(sorted), nil
	default:
		return nil, contracts.ErrInvalidViewMode
	}
}

func excludeWeekday(trades []contracts.Trade) []contracts.Trade {
	out := make([]contracts.Trade, 0, len(trades))
	for _, t := range trades {
		// unparseable exits are kept: their weekday is unknown
		if exit, ok := t.ExitAt(); ok && exit.Weekday() == ExcludedWeekday {
			continue
		}
		out = append(out, t)
	}
	return out
}

func daily(sorted []contracts.Trade) []contracts.EquityPoint {
	buckets := tradeset.GroupByExitDate(sorted)
	dates := buckets.Dates()
	points := make([]contracts.EquityPoint, 0, len(dates))

	cumulative := 0.0
	for _, date := range dates {
		pnl := buckets[date]
		cumulative += pnl

		points = append(points, contracts.EquityPoint{
			Index:            0,
			Timestamp:        dayStartMillis(date),
			CumulativeEquity: cumulative,
			Label:            date,
			DailyPnL:         &pnl,
		})
	}
	return points
}

func perTrade(sorted []contracts.Trade) []contracts.EquityPoint {
	points := make([]contracts.EquityPoint, 0, len(sorted))

	cumulative := 0.0
	for i, t := range sorted {
		cumulative += t.ProfitLoss

		var ts int64
		if exit, ok := t.ExitAt(); ok {
			ts = exit.UnixMilli()
		}
		points = append(points, contracts.EquityPoint{
			Index:            i + 1,
			Timestamp:        ts,
			CumulativeEquity: cumulative,
			Label:            t.ID,
		})
	}
	return points
}

// dayStartMillis is midnight of the date key, 0 when the key is not a date
func dayStartMillis(date string) int64 {
	day, err := time.Parse(contracts.DateLayout, date)
	if err != nil {
		return 0
	}
	return day.UnixMilli()
}

// TickStride is the distance between axis ticks for a series of n points.
// Daily series aim for between 4 and 8 ticks; per-trade series aim for 8.
// Short and empty series never go below a stride of 1.
func TickStride(n int, mode contracts.ViewMode) int {
	if n <= 0 {
		return 1
	}

	target := perTradeTickCount
	if mode != contracts.ViewPerTrade {
		target = n
		if target < minTicks {
			target = minTicks
		}
		if target > maxTicks {
			target = maxTicks
		}
	}

	stride := int(math.Ceil(float64(n) / float64(target)))
	if stride < 1 {
		return 1
	}
	return stride
}

// SelectTicks picks every stride-th point as an axis tick. The key is the
// timestamp for daily series and the trade index for per-trade series.
func SelectTicks(points []contracts.EquityPoint, mode contracts.ViewMode) contracts.AxisTicks {
	stride := TickStride(len(points), mode)
	ticks := make([]contracts.Tick, 0, len(points)/stride+1)

	for i := 0; i < len(points); i += stride {
		p := points[i]
		if mode == contracts.ViewPerTrade {
			ticks = append(ticks, contracts.Tick{Key: int64(p.Index), Label: strconv.Itoa(p.Index)})
			continue
		}
		ticks = append(ticks, contracts.Tick{Key: p.Timestamp, Label: AxisLabel(p.Timestamp)})
	}

	return contracts.AxisTicks{Stride: stride, Ticks: ticks}
}

// AxisLabel formats a daily axis key as YYYY-MM-DD
func AxisLabel(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(contracts.DateLayout)
}

// TooltipLabel is the hover title of a point: "Trade #N" per-trade, the date otherwise
func TooltipLabel(p contracts.EquityPoint, mode contracts.ViewMode) string {
	if mode == contracts.ViewPerTrade {
		return "Trade #" + strconv.Itoa(p.Index)
	}
	return p.Label
}

// Window narrows points to the inclusive position range [start, end] the way a
// chart brush does. Negative end means "through the last point". Values are
// returned untouched; out-of-range bounds are clamped.
func Window(points []contracts.EquityPoint, start, end int) []contracts.EquityPoint {
	if len(points) == 0 {
		return []contracts.EquityPoint{}
	}
	if start < 0 {
		start = 0
	}
	if end < 0 || end >= len(points) {
		end = len(points) - 1
	}
	if start > end {
		return []contracts.EquityPoint{}
	}
	return points[start : end+1]
}
