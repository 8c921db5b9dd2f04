package presentation

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/threelines/tradeboard/backend/internal/contracts"
)

func TestFixed(t *testing.T) {
	assert.Equal(t, "66.67", Fixed(200.0/3, 2))
	assert.Equal(t, "-40.00", Fixed(-40, 2))
	assert.Equal(t, "1.235", Fixed(1.2345, 3))
	assert.Equal(t, "NaN", Fixed(math.NaN(), 2))
	assert.Equal(t, "+Inf", Fixed(math.Inf(1), 2))
}

func TestCurrencyAndPercent(t *testing.T) {
	assert.Equal(t, "$85.00", Currency(85))
	assert.Equal(t, "$100", WholeCurrency(99.6))
	assert.Equal(t, "66.67%", Percent(66.66666))
	assert.Equal(t, "1.234", Ratio(1.23449))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		ms   float64
		want string
	}{
		{0, "0ms"},
		{850.4, "850ms"},
		{999.6, "1000ms"},
		{42000, "42s"},
		{59499, "59s"},
		{90000, "1m 30s"}, // minutes floor; rounding them (Math.round in the web dashboard) would print "2m 30s"
		{187000, "3m 7s"},
		{119700, "2m 0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Duration(tt.ms), "ms=%v", tt.ms)
	}
}

func TestFormatReport(t *testing.T) {
	r := &contracts.StatisticsReport{
		TotalTrades:             3,
		WinRate:                 200.0 / 3,
		ProfitFactor:            3.125,
		SortinoRatio:            4.56789,
		TotalProfitLoss:         85,
		LargestLosingTrade:      -40,
		AvgTradeDuration:        3_600_000,
		TWRGainPercent:          1.7,
		LinearAnnualizedPercent: 303.367,
		PerBotTWRs: []contracts.BotPerformance{
			{BotLabel: "A", GainPercent: 1.7, AnnualizedPercent: 303.367, SortinoRatio: 4.56789},
		},
	}

	d := FormatReport(r)

	assert.Equal(t, "66.67%", d.WinRate)
	assert.Equal(t, "3.13", d.ProfitFactor)
	assert.Equal(t, "4.568", d.SortinoRatio)
	assert.Equal(t, "$85.00", d.TotalProfitLoss)
	assert.Equal(t, "$-40.00", d.LargestLosingTrade)
	assert.Equal(t, "60m 0s", d.AvgTradeDuration)
	assert.Len(t, d.PerBot, 1)
	assert.Equal(t, "303.37%", d.PerBot[0].AnnualizedPercent)

	summary := Summary(r)
	assert.True(t, strings.Contains(summary, "A: 1.70% TWR (303.37% annualized), Sortino: 4.568"))
}

func TestCurveTable(t *testing.T) {
	pnl := 12.0
	out := CurveTable([]contracts.EquityPoint{
		{Label: "2024-01-02", CumulativeEquity: 12, DailyPnL: &pnl},
	}, contracts.ViewDaily)

	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "equity $12")
	assert.Contains(t, out, "daily $12")
}
