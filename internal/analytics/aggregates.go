package analytics

import (
	"math"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/tradeset"
)

// aggregates are the single-pass trade statistics (no ordering needed)
type aggregates struct {
	total int
	wins  int
	// non-positive trades, zero P&L included
	losses int

	grossProfit float64
	grossLoss   float64
	totalPnL    float64

	// average accumulators; zero P&L trades are in neither
	winSum    float64
	winCount  int
	lossSum   float64
	lossCount int

	largestWin  float64
	largestLoss float64

	curWinStreak  int
	curLossStreak int
	maxWinStreak  int
	maxLossStreak int

	totalDurationMs float64
}

func aggregate(trades []contracts.Trade) aggregates {
	var a aggregates

	for _, t := range trades {
		pnl := t.ProfitLoss
		a.total++
		a.totalPnL += pnl
		a.totalDurationMs += tradeset.Millis(t.ExitTime) - tradeset.Millis(t.EntryTime)

		if t.IsWin() {
			a.wins++
			a.grossProfit += pnl
			a.winSum += pnl
			a.winCount++
			a.largestWin = math.Max(a.largestWin, pnl)

			a.curWinStreak++
			a.curLossStreak = 0
			if a.curWinStreak > a.maxWinStreak {
				a.maxWinStreak = a.curWinStreak
			}
			continue
		}

		a.losses++
		a.grossLoss += math.Abs(pnl)
		if pnl < 0 {
			a.lossSum += pnl
			a.lossCount++
		}
		a.largestLoss = math.Min(a.largestLoss, pnl)

		a.curLossStreak++
		a.curWinStreak = 0
		if a.curLossStreak > a.maxLossStreak {
			a.maxLossStreak = a.curLossStreak
		}
	}

	return a
}

func (a aggregates) winRate() float64 {
	if a.total == 0 {
		return 0
	}
	return 100 * float64(a.wins) / float64(a.total)
}

// profitFactor falls back to gross profit when there is no gross loss
func (a aggregates) profitFactor() float64 {
	if a.grossLoss == 0 {
		return a.grossProfit
	}
	return a.grossProfit / a.grossLoss
}

func (a aggregates) avgWin() float64 {
	if a.winCount == 0 {
		return 0
	}
	return a.winSum / float64(a.winCount)
}

func (a aggregates) avgLoss() float64 {
	if a.lossCount == 0 {
		return 0
	}
	return a.lossSum / float64(a.lossCount)
}

func (a aggregates) avgDurationMs() float64 {
	if a.total == 0 {
		return 0
	}
	return a.totalDurationMs / float64(a.total)
}
