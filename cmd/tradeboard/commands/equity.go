package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/equity"
	"github.com/threelines/tradeboard/backend/internal/presentation"
)

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "에쿼티 커브 출력",
	Long: `Prints the cumulative equity series in daily or per-trade mode.
Trades exiting on a Saturday are left out of the series.

Example:
  go run ./cmd/tradeboard equity
  go run ./cmd/tradeboard equity --view per-trade --bot NQ-Breakout --start 10 --end 20`,
	RunE: runEquity,
}

var (
	equityFilter filterFlags
	equityView   string
	equityStart  int
	equityEnd    int
)

func init() {
	rootCmd.AddCommand(equityCmd)

	equityFilter.register(equityCmd)
	equityCmd.Flags().StringVar(&equityView, "view", "daily", "view mode (daily|per-trade)")
	equityCmd.Flags().IntVar(&equityStart, "start", 0, "first point position to print")
	equityCmd.Flags().IntVar(&equityEnd, "end", -1, "last point position to print (-1 = last)")
}

func runEquity(cmd *cobra.Command, args []string) error {
	filter, err := equityFilter.filter()
	if err != nil {
		return err
	}
	view, err := contracts.ParseViewMode(equityView)
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

	points, _, err := d.service.Equity(ctx, filter, view)
	if err != nil {
		return fmt.Errorf("build equity series: %w", err)
	}

	if len(points) == 0 {
		fmt.Println("No trades in range")
		return nil
	}

	fmt.Print(renderCurve(points, view, equityStart, equityEnd))
	return nil
}

// renderCurve prints the [start, end] window with ticks chosen over that window,
// the same way GET /api/equity does
func renderCurve(points []contracts.EquityPoint, view contracts.ViewMode, start, end int) string {
	visible := equity.Window(points, start, end)
	ticks := equity.SelectTicks(visible, view)

	var b strings.Builder
	fmt.Fprintf(&b, "=== Equity Curve (%s, %d of %d points) ===\n", view, len(visible), len(points))
	b.WriteString(presentation.CurveTable(visible, view))

	labels := make([]string, 0, len(ticks.Ticks))
	for _, t := range ticks.Ticks {
		labels = append(labels, t.Label)
	}
	fmt.Fprintf(&b, "\nAxis ticks (every %d): %s\n", ticks.Stride, strings.Join(labels, ", "))

	return b.String()
}
