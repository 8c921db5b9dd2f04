package analytics

import (
	"math"

	"github.com/threelines/tradeboard/backend/internal/tradeset"
)

// ReturnStats is the result of replaying daily P&L against a starting equity
type ReturnStats struct {
	DailyReturns []float64
	TWR          float64 // fraction, 0.05 = 5%
	Sortino      float64
	EndingEquity float64
}

// DailyRiskFreeRate converts an annual rate into the per-trading-day rate
func (p Params) DailyRiskFreeRate() float64 {
	return math.Pow(1+p.RiskFreeRate, 1/float64(p.TradingDays)) - 1
}

// TimeWeightedReturn replays the daily buckets in date order starting from
// startingEquity. Each day's return is re-based on the equity at the start of
// that day, then the equity absorbs the day's P&L.
func TimeWeightedReturn(daily tradeset.DailyPnL, startingEquity float64, p Params) ReturnStats {
	equity := startingEquity
	factor := 1.0
	dates := daily.Dates()
	returns := make([]float64, 0, len(dates))

	for _, date := range dates {
		pnl := daily[date]
		r := pnl / equity
		returns = append(returns, r)
		factor *= 1 + r
		equity += pnl
	}

	return ReturnStats{
		DailyReturns: returns,
		TWR:          factor - 1,
		Sortino:      sortino(returns, p),
		EndingEquity: equity,
	}
}

// DownsideDeviation is the RMS of (r - mar) over the days strictly below mar.
// Days at or above mar contribute nothing; no such days yields 0.
func DownsideDeviation(returns []float64, mar float64) float64 {
	var sumSq float64
	var n int
	for _, r := range returns {
		if r < mar {
			d := r - mar
			sumSq += d * d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sumSq / float64(n))
}

func sortino(returns []float64, p Params) float64 {
	dailyRFR := p.DailyRiskFreeRate()
	dd := DownsideDeviation(returns, dailyRFR)
	if dd == 0 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := 0.0
	if len(returns) > 0 {
		mean = sum / float64(len(returns))
	}

	return (mean - dailyRFR) / dd * math.Sqrt(float64(p.TradingDays))
}

// LinearAnnualizedPercent extrapolates pnl earned over spanDays to a 365-day
// year without compounding, as a percent of startingEquity
func LinearAnnualizedPercent(pnl, spanDays, startingEquity float64) float64 {
	if !(spanDays > 0) {
		return 0
	}
	return pnl / spanDays * 365 / startingEquity * 100
}
