package analytics

import (
	"time"

	"github.com/threelines/tradeboard/backend/internal/contracts"
)

// StartingEquities reconstructs each bot's equity at windowStart from the
// unfiltered universe: nominal capital plus every P&L the bot realised with
// an exit in [firstTrade, windowStart). A bot whose first trade is at or after
// windowStart starts at nominal capital.
func StartingEquities(all []contracts.Trade, windowStart time.Time, p Params) map[string]float64 {
	first := firstTradeTimes(all)

	prior := make(map[string]float64)
	for _, t := range all {
		botStart, ok := first[t.BotLabel]
		if !ok || !windowStart.After(botStart) {
			continue
		}
		exit, ok := t.ExitAt()
		if !ok {
			continue
		}
		if !exit.Before(botStart) && exit.Before(windowStart) {
			prior[t.BotLabel] += t.ProfitLoss
		}
	}

	equities := make(map[string]float64, len(first))
	for bot := range first {
		equities[bot] = p.InitialCapitalPerBot + prior[bot]
	}
	return equities
}

// firstTradeTimes returns each bot's earliest entry time
func firstTradeTimes(trades []contracts.Trade) map[string]time.Time {
	first := make(map[string]time.Time)
	for _, t := range trades {
		entry, ok := t.EntryAt()
		if !ok {
			continue
		}
		if cur, seen := first[t.BotLabel]; !seen || entry.Before(cur) {
			first[t.BotLabel] = entry
		}
	}
	return first
}

// equityFor looks up a bot's reconstructed equity, defaulting to nominal
// capital for bots absent from the universe
func equityFor(equities map[string]float64, bot string, p Params) float64 {
	if eq, ok := equities[bot]; ok {
		return eq
	}
	return p.InitialCapitalPerBot
}
