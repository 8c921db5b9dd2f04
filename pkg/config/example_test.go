package config_test

import (
	"fmt"

	"github.com/threelines/tradeboard/backend/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	fmt.Printf("Server running on port: %s\n", cfg.Port)
	fmt.Printf("Trade source: %s (%s)\n", cfg.Source.Kind, cfg.Source.PollInterval)
	fmt.Printf("Initial capital per bot: %.0f\n", cfg.Analytics.InitialCapitalPerBot)
}
