// Package presentation applies the display rounding rules to full-precision
// analytics output. Nothing here feeds back into computation.
package presentation

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/threelines/tradeboard/backend/internal/contracts"
)

// Fixed renders v with places decimals. Non-finite values render as NaN/+Inf/-Inf.
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Currency renders a money amount with 2 decimals, e.g. "$-40.00"
func Currency(v float64) string {
	return "$" + Fixed(v, 2)
}

// WholeCurrency renders a money amount rounded to whole units, used on chart axes and tooltips
func WholeCurrency(v float64) string {
	return "$" + Fixed(v, 0)
}

// Percent renders a percentage with 2 decimals
func Percent(v float64) string {
	return Fixed(v, 2) + "%"
}

// Ratio renders a Sortino ratio with 3 decimals
func Ratio(v float64) string {
	return Fixed(v, 3)
}

// Duration humanises a millisecond duration: "850ms", "42s" or "3m 7s"
func Duration(ms float64) string {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return strconv.FormatFloat(ms, 'f', -1, 64)
	}

	switch {
	case ms < 1000:
		return fmt.Sprintf("%dms", roundHalfUp(ms))
	case ms < 60000:
		return fmt.Sprintf("%ds", roundHalfUp(ms/1000))
	default:
		minutes := int64(ms / 60000)
		seconds := roundHalfUp(math.Mod(ms, 60000) / 1000)
		if seconds == 60 {
			minutes++
			seconds = 0
		}
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// Report is the display form of a StatisticsReport
type Report struct {
	TotalTrades             int    `json:"totalTrades"`
	WinRate                 string `json:"winRate"`
	ProfitFactor            string `json:"profitFactor"`
	SortinoRatio            string `json:"sortinoRatio"`
	TotalProfitLoss         string `json:"totalProfitLoss"`
	AvgWinningTrade         string `json:"avgWinningTrade"`
	AvgLosingTrade          string `json:"avgLosingTrade"`
	TWRGainPercent          string `json:"twrGainPercent"`
	LinearAnnualizedPercent string `json:"linearAnnualizedPercent"`
	MaxConsecutiveWins      int    `json:"maxConsecutiveWins"`
	MaxConsecutiveLosses    int    `json:"maxConsecutiveLosses"`
	LargestWinningTrade     string `json:"largestWinningTrade"`
	LargestLosingTrade      string `json:"largestLosingTrade"`
	AvgTradeDuration        string `json:"avgTradeDuration"`
	PerBot                  []Bot  `json:"perBot"`
}

// Bot is the display form of a BotPerformance row
type Bot struct {
	BotLabel          string `json:"botLabel"`
	GainPercent       string `json:"gainPercent"`
	AnnualizedPercent string `json:"annualizedPercent"`
	SortinoRatio      string `json:"sortinoRatio"`
}

// FormatReport rounds every figure of r for display
func FormatReport(r *contracts.StatisticsReport) Report {
	out := Report{
		TotalTrades:             r.TotalTrades,
		WinRate:                 Percent(r.WinRate),
		ProfitFactor:            Fixed(r.ProfitFactor, 2),
		SortinoRatio:            Ratio(r.SortinoRatio),
		TotalProfitLoss:         Currency(r.TotalProfitLoss),
		AvgWinningTrade:         Currency(r.AvgWinningTrade),
		AvgLosingTrade:          Currency(r.AvgLosingTrade),
		TWRGainPercent:          Percent(r.TWRGainPercent),
		LinearAnnualizedPercent: Percent(r.LinearAnnualizedPercent),
		MaxConsecutiveWins:      r.MaxConsecutiveWins,
		MaxConsecutiveLosses:    r.MaxConsecutiveLosses,
		LargestWinningTrade:     Currency(r.LargestWinningTrade),
		LargestLosingTrade:      Currency(r.LargestLosingTrade),
		AvgTradeDuration:        Duration(r.AvgTradeDuration),
		PerBot:                  make([]Bot, 0, len(r.PerBotTWRs)),
	}

	for _, b := range r.PerBotTWRs {
		out.PerBot = append(out.PerBot, Bot{
			BotLabel:          b.BotLabel,
			GainPercent:       Percent(b.GainPercent),
			AnnualizedPercent: Percent(b.AnnualizedPercent),
			SortinoRatio:      Ratio(b.SortinoRatio),
		})
	}

	return out
}
