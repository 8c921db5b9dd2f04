// Package tradeset holds the ordering and grouping primitives shared by the
// statistics engine and the equity series builder. Both must bucket and sort
// trades identically or the displayed curve drifts from the displayed numbers.
package tradeset

import (
	"math"
	"sort"

	"github.com/threelines/tradeboard/backend/internal/contracts"
)

// Millis returns the unix-millisecond value of an ISO-8601 timestamp, NaN when unparseable
func Millis(ts string) float64 {
	t, ok := contracts.ParseTimestamp(ts)
	if !ok {
		return math.NaN()
	}
	return float64(t.UnixMilli())
}

// SortByEntry returns a copy of trades ordered by entry time ascending.
// The sort is stable; trades with unparseable entry times go last.
func SortByEntry(trades []contracts.Trade) []contracts.Trade {
	return sortBy(trades, func(t contracts.Trade) string { return t.EntryTime })
}

// SortByExit returns a copy of trades ordered by exit time ascending.
// The sort is stable; trades with unparseable exit times go last.
func SortByExit(trades []contracts.Trade) []contracts.Trade {
	return sortBy(trades, func(t contracts.Trade) string { return t.ExitTime })
}

func sortBy(trades []contracts.Trade, key func(contracts.Trade) string) []contracts.Trade {
	type keyed struct {
		trade contracts.Trade
		ms    float64
	}

	items := make([]keyed, len(trades))
	for i, t := range trades {
		items[i] = keyed{trade: t, ms: Millis(key(t))}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].ms, items[j].ms
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a < b
	})

	out := make([]contracts.Trade, len(items))
	for i, it := range items {
		out[i] = it.trade
	}
	return out
}

// DailyPnL maps an exit date key ("YYYY-MM-DD") to the summed P&L of trades exiting that day
type DailyPnL map[string]float64

// GroupByExitDate buckets trades by the date portion of their exit timestamp
func GroupByExitDate(trades []contracts.Trade) DailyPnL {
	daily := make(DailyPnL)
	for _, t := range trades {
		daily[t.ExitDate()] += t.ProfitLoss
	}
	return daily
}

// Dates returns the bucket keys in ascending order.
// Lexical order is chronological because the key format is fixed-width and zero-padded.
func (d DailyPnL) Dates() []string {
	dates := make([]string, 0, len(d))
	for date := range d {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Total sums all buckets
func (d DailyPnL) Total() float64 {
	var total float64
	for _, date := range d.Dates() {
		total += d[date]
	}
	return total
}

// BotsInOrder returns the distinct bot labels in first-seen order
func BotsInOrder(trades []contracts.Trade) []string {
	seen := make(map[string]bool)
	var bots []string
	for _, t := range trades {
		if !seen[t.BotLabel] {
			seen[t.BotLabel] = true
			bots = append(bots, t.BotLabel)
		}
	}
	return bots
}

// GroupByBot partitions trades per bot, preserving input order inside each slice
func GroupByBot(trades []contracts.Trade) map[string][]contracts.Trade {
	byBot := make(map[string][]contracts.Trade)
	for _, t := range trades {
		byBot[t.BotLabel] = append(byBot[t.BotLabel], t)
	}
	return byBot
}

// TotalProfitLoss sums profitLoss over trades
func TotalProfitLoss(trades []contracts.Trade) float64 {
	var total float64
	for _, t := range trades {
		total += t.ProfitLoss
	}
	return total
}
