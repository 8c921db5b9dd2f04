package analytics

import "github.com/threelines/tradeboard/backend/pkg/config"

// Params holds the constants of the performance model
type Params struct {
	InitialCapitalPerBot float64 // nominal capital each bot starts with
	RiskFreeRate         float64 // annual, e.g. 0.0438
	TradingDays          int     // periods per year for Sortino annualisation
}

// DefaultParams returns the production constants
func DefaultParams() Params {
	return Params{
		InitialCapitalPerBot: 5000,
		RiskFreeRate:         0.0438,
		TradingDays:          252,
	}
}

// ParamsFromConfig builds Params from the analytics section of the config
func ParamsFromConfig(cfg config.AnalyticsConfig) Params {
	return Params{
		InitialCapitalPerBot: cfg.InitialCapitalPerBot,
		RiskFreeRate:         cfg.RiskFreeRate,
		TradingDays:          cfg.TradingDays,
	}
}
