package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/threelines/tradeboard/backend/internal/presentation"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "성과 통계 출력",
	Long: `Computes the statistics report for the selected bot and date range.

Example:
  go run ./cmd/tradeboard stats
  go run ./cmd/tradeboard stats --bot ES-Momentum --from 2024-03-01 --json`,
	RunE: runStats,
}

var (
	statsFilter filterFlags
	statsJSON   bool
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsFilter.register(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print display-rounded JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	filter, err := statsFilter.filter()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	report, err := d.service.Statistics(ctx, filter)
	if err != nil {
		return fmt.Errorf("compute statistics: %w", err)
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(presentation.FormatReport(report))
	}

	fmt.Print(presentation.Summary(report))
	return nil
}
