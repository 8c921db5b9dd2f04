// Package analytics computes the performance statistics of a set of closed trades.
//
// The engine is a pure function of its inputs: it holds only immutable
// parameters, never mutates the trades it is given and recomputes everything
// on every call, so one Engine may be shared across goroutines.
package analytics

import (
	"math"
	"time"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/tradeset"
)

const (
	msPerDay  = 24 * 60 * 60 * 1000
	msPerYear = 365 * msPerDay
)

// Engine computes StatisticsReports
// ⭐ SSOT: 통계/리스크 지표 계산은 여기서만
type Engine struct {
	params Params
}

// NewEngine creates a statistics engine with the given constants
func NewEngine(params Params) *Engine {
	return &Engine{params: params}
}

// Params returns the constants the engine was built with
func (e *Engine) Params() Params {
	return e.params
}

// Request carries both views of the trade data explicitly
type Request struct {
	// Filtered is the trade set the report describes (already filtered by bot/date)
	Filtered []contracts.Trade
	// All is the unfiltered universe, used to rebuild each bot's equity at the window start
	All []contracts.Trade
	// SelectedBot is the active bot filter; empty means "all bots" and enables the per-bot breakdown
	SelectedBot string
	// WindowStart is the start of the active date filter.
	// Nil falls back to the earliest entry time in Filtered.
	WindowStart *time.Time
}

// ComputeStatistics is the three-argument form of Compute
func (e *Engine) ComputeStatistics(filtered, all []contracts.Trade, selectedBot string) *contracts.StatisticsReport {
	return e.Compute(Request{Filtered: filtered, All: all, SelectedBot: selectedBot})
}

// Compute builds the full statistics report for req
func (e *Engine) Compute(req Request) *contracts.StatisticsReport {
	if len(req.Filtered) == 0 {
		return contracts.EmptyReport()
	}

	agg := aggregate(req.Filtered)
	spanMs := timeSpanMs(req.Filtered)
	spanDays := spanMs / msPerDay

	equities := e.windowEquities(req)
	bots := tradeset.BotsInOrder(req.Filtered)

	pooledEquity := 0.0
	for _, bot := range bots {
		pooledEquity += equityFor(equities, bot, e.params)
	}

	pooled := TimeWeightedReturn(tradeset.GroupByExitDate(req.Filtered), pooledEquity, e.params)

	report := &contracts.StatisticsReport{
		TotalTrades:   agg.total,
		WinningTrades: agg.wins,
		LosingTrades:  agg.losses,

		WinRate:      agg.winRate(),
		ProfitFactor: agg.profitFactor(),
		GrossProfit:  agg.grossProfit,
		GrossLoss:    agg.grossLoss,

		MaxConsecutiveWins:   agg.maxWinStreak,
		MaxConsecutiveLosses: agg.maxLossStreak,
		CurrentWinStreak:     agg.curWinStreak,
		CurrentLossStreak:    agg.curLossStreak,

		TotalProfitLoss:     agg.totalPnL,
		AvgWinningTrade:     agg.avgWin(),
		AvgLosingTrade:      agg.avgLoss(),
		LargestWinningTrade: agg.largestWin,
		LargestLosingTrade:  agg.largestLoss,
		AvgTradeDuration:    agg.avgDurationMs(),

		SortinoRatio:            pooled.Sortino,
		TWRGainPercent:          pooled.TWR * 100,
		LinearAnnualizedPercent: LinearAnnualizedPercent(agg.totalPnL, spanDays, pooledEquity),
		StartingEquity:          pooledEquity,
		TimeInYears:             spanMs / msPerYear,
		TimeInDays:              spanDays,

		PerBotTWRs: []contracts.BotPerformance{},
	}

	if req.SelectedBot == "" {
		report.PerBotTWRs = e.perBot(req.Filtered, bots, equities, spanDays)
	}

	return report
}

// perBot computes each bot's own TWR, Sortino and linear annualised figure.
// The pooled time span is used for every bot.
func (e *Engine) perBot(trades []contracts.Trade, bots []string, equities map[string]float64, spanDays float64) []contracts.BotPerformance {
	byBot := tradeset.GroupByBot(trades)
	out := make([]contracts.BotPerformance, 0, len(bots))

	for _, bot := range bots {
		botTrades := byBot[bot]
		eq := equityFor(equities, bot, e.params)
		stats := TimeWeightedReturn(tradeset.GroupByExitDate(botTrades), eq, e.params)

		out = append(out, contracts.BotPerformance{
			BotLabel:          bot,
			GainPercent:       stats.TWR * 100,
			AnnualizedPercent: LinearAnnualizedPercent(tradeset.TotalProfitLoss(botTrades), spanDays, eq),
			SortinoRatio:      stats.Sortino,
			StartingEquity:    eq,
			TradeCount:        len(botTrades),
		})
	}

	return out
}

// windowEquities resolves the window start and rebuilds starting equities.
// Without any usable start every bot sits at nominal capital.
func (e *Engine) windowEquities(req Request) map[string]float64 {
	start := req.WindowStart
	if start == nil {
		if first, ok := tradeset.SortByEntry(req.Filtered)[0].EntryAt(); ok {
			start = &first
		}
	}
	if start == nil {
		return map[string]float64{}
	}
	return StartingEquities(req.All, *start, e.params)
}

// timeSpanMs is last exit minus first entry over trades ordered by entry time,
// floored at one day
func timeSpanMs(trades []contracts.Trade) float64 {
	sorted := tradeset.SortByEntry(trades)
	first := tradeset.Millis(sorted[0].EntryTime)
	last := tradeset.Millis(sorted[len(sorted)-1].ExitTime)
	return math.Max(last-first, msPerDay)
}
