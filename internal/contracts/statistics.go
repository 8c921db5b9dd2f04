package contracts

import "math"

// StatisticsReport is the full performance surface of a trade set
// ⭐ SSOT: 통계 리포트 구조체 (full precision, 반올림은 presentation 에서)
type StatisticsReport struct {
	TotalTrades   int `json:"totalTrades"`
	WinningTrades int `json:"winningTrades"`
	LosingTrades  int `json:"losingTrades"` // includes zero P&L trades

	WinRate      float64 `json:"winRate"` // percent
	ProfitFactor float64 `json:"profitFactor"`
	GrossProfit  float64 `json:"grossProfit"`
	GrossLoss    float64 `json:"grossLoss"` // absolute value

	MaxConsecutiveWins   int `json:"maxConsecutiveWins"`
	MaxConsecutiveLosses int `json:"maxConsecutiveLosses"`
	CurrentWinStreak     int `json:"currentWinStreak"`
	CurrentLossStreak    int `json:"currentLossStreak"`

	TotalProfitLoss     float64 `json:"totalProfitLoss"`
	AvgWinningTrade     float64 `json:"avgWinningTrade"`
	AvgLosingTrade      float64 `json:"avgLosingTrade"`
	LargestWinningTrade float64 `json:"largestWinningTrade"`
	LargestLosingTrade  float64 `json:"largestLosingTrade"`
	AvgTradeDuration    float64 `json:"avgTradeDuration"` // milliseconds

	SortinoRatio            float64 `json:"sortinoRatio"`
	TWRGainPercent          float64 `json:"twrGainPercent"`
	LinearAnnualizedPercent float64 `json:"linearAnnualizedPercent"`
	StartingEquity          float64 `json:"startingEquity"` // pooled
	TimeInYears             float64 `json:"timeInYears"`
	TimeInDays              float64 `json:"timeInDays"`

	PerBotTWRs []BotPerformance `json:"perBotTWRs"`
}

// BotPerformance is one row of the per-bot breakdown
type BotPerformance struct {
	BotLabel          string  `json:"botLabel"`
	GainPercent       float64 `json:"gainPercent"`       // TWR
	AnnualizedPercent float64 `json:"annualizedPercent"` // linear
	SortinoRatio      float64 `json:"sortinoRatio"`
	StartingEquity    float64 `json:"startingEquity"`
	TradeCount        int     `json:"tradeCount"`
}

// EmptyReport is the defined result for an empty trade set
func EmptyReport() *StatisticsReport {
	return &StatisticsReport{PerBotTWRs: []BotPerformance{}}
}

// NonFiniteFields lists the float fields holding NaN or ±Inf.
// encoding/json cannot represent them, so transports check before encoding.
func (r *StatisticsReport) NonFiniteFields() []string {
	var fields []string
	check := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			fields = append(fields, name)
		}
	}

	check("winRate", r.WinRate)
	check("profitFactor", r.ProfitFactor)
	check("grossProfit", r.GrossProfit)
	check("grossLoss", r.GrossLoss)
	check("totalProfitLoss", r.TotalProfitLoss)
	check("avgWinningTrade", r.AvgWinningTrade)
	check("avgLosingTrade", r.AvgLosingTrade)
	check("largestWinningTrade", r.LargestWinningTrade)
	check("largestLosingTrade", r.LargestLosingTrade)
	check("avgTradeDuration", r.AvgTradeDuration)
	check("sortinoRatio", r.SortinoRatio)
	check("twrGainPercent", r.TWRGainPercent)
	check("linearAnnualizedPercent", r.LinearAnnualizedPercent)
	check("startingEquity", r.StartingEquity)
	check("timeInYears", r.TimeInYears)
	check("timeInDays", r.TimeInDays)
	for _, b := range r.PerBotTWRs {
		check(b.BotLabel+".gainPercent", b.GainPercent)
		check(b.BotLabel+".annualizedPercent", b.AnnualizedPercent)
		check(b.BotLabel+".sortinoRatio", b.SortinoRatio)
		check(b.BotLabel+".startingEquity", b.StartingEquity)
	}

	return fields
}
