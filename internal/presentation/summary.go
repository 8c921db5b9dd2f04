package presentation

import (
	"fmt"
	"strings"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/equity"
)

// Summary renders a report as the plain-text block printed by the CLI
func Summary(r *contracts.StatisticsReport) string {
	d := FormatReport(r)
	var sb strings.Builder

	sb.WriteString("=== Performance Metrics ===\n")
	fmt.Fprintf(&sb, "Total Trades: %d\n", d.TotalTrades)
	fmt.Fprintf(&sb, "Win Rate: %s\n", d.WinRate)
	fmt.Fprintf(&sb, "Profit Factor: %s\n", d.ProfitFactor)
	fmt.Fprintf(&sb, "Sortino Ratio: %s\n", d.SortinoRatio)

	sb.WriteString("\n=== Profit/Loss Analysis ===\n")
	fmt.Fprintf(&sb, "Total P/L: %s\n", d.TotalProfitLoss)
	fmt.Fprintf(&sb, "Avg Win: %s\n", d.AvgWinningTrade)
	fmt.Fprintf(&sb, "Avg Loss: %s\n", d.AvgLosingTrade)
	fmt.Fprintf(&sb, "TWR Gain: %s\n", d.TWRGainPercent)
	fmt.Fprintf(&sb, "Annualized Gain: %s\n", d.LinearAnnualizedPercent)

	sb.WriteString("\n=== Trade Metrics ===\n")
	fmt.Fprintf(&sb, "Max Consecutive Wins: %d\n", d.MaxConsecutiveWins)
	fmt.Fprintf(&sb, "Max Consecutive Losses: %d\n", d.MaxConsecutiveLosses)
	fmt.Fprintf(&sb, "Largest Win: %s\n", d.LargestWinningTrade)
	fmt.Fprintf(&sb, "Largest Loss: %s\n", d.LargestLosingTrade)
	fmt.Fprintf(&sb, "Avg Duration: %s\n", d.AvgTradeDuration)

	if len(d.PerBot) > 0 {
		sb.WriteString("\n=== Per-Bot Performance ===\n")
		for _, b := range d.PerBot {
			fmt.Fprintf(&sb, "%s: %s TWR (%s annualized), Sortino: %s\n",
				b.BotLabel, b.GainPercent, b.AnnualizedPercent, b.SortinoRatio)
		}
	}

	return sb.String()
}

// CurveTable renders an equity series as one line per point
func CurveTable(points []contracts.EquityPoint, mode contracts.ViewMode) string {
	var sb strings.Builder
	for _, p := range points {
		fmt.Fprintf(&sb, "%-12s equity %s", equity.TooltipLabel(p, mode), WholeCurrency(p.CumulativeEquity))
		if p.DailyPnL != nil {
			fmt.Fprintf(&sb, "  daily %s", WholeCurrency(*p.DailyPnL))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
