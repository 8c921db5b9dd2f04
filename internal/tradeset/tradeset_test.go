package tradeset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threelines/tradeboard/backend/internal/contracts"
)

func trade(id, bot, entry, exit string, pnl float64) contracts.Trade {
	return contracts.Trade{ID: id, BotLabel: bot, EntryTime: entry, ExitTime: exit, ProfitLoss: pnl, Side: contracts.SideLong}
}

func ids(trades []contracts.Trade) []string {
	out := make([]string, len(trades))
	for i, t := range trades {
		out[i] = t.ID
	}
	return out
}

func TestMillis(t *testing.T) {
	assert.Equal(t, float64(1704067200000), Millis("2024-01-01T00:00:00"))
	assert.Equal(t, float64(1704067200500), Millis("2024-01-01T00:00:00.500"))
	assert.True(t, math.IsNaN(Millis("not-a-date")))
}

func TestSortByEntryAndExitUseDifferentKeys(t *testing.T) {
	trades := []contracts.Trade{
		trade("a", "A", "2024-01-02T09:00:00", "2024-01-02T10:00:00", 1),
		trade("b", "A", "2024-01-01T09:00:00", "2024-01-03T10:00:00", 1),
		trade("c", "A", "2024-01-01T12:00:00", "2024-01-01T13:00:00", 1),
	}

	assert.Equal(t, []string{"b", "c", "a"}, ids(SortByEntry(trades)))
	assert.Equal(t, []string{"c", "a", "b"}, ids(SortByExit(trades)))

	// input untouched
	assert.Equal(t, []string{"a", "b", "c"}, ids(trades))
}

func TestSortIsStableAndPutsInvalidLast(t *testing.T) {
	trades := []contracts.Trade{
		trade("bad", "A", "garbage", "garbage", 1),
		trade("x", "A", "2024-01-01T09:00:00", "2024-01-01T10:00:00", 1),
		trade("y", "A", "2024-01-01T09:00:00", "2024-01-01T10:00:00", 1),
	}

	assert.Equal(t, []string{"x", "y", "bad"}, ids(SortByExit(trades)))
}

func TestGroupByExitDate(t *testing.T) {
	trades := []contracts.Trade{
		trade("1", "A", "2024-01-01T09:00:00", "2024-01-02T10:00:00", 100),
		trade("2", "B", "2024-01-01T09:00:00", "2024-01-01T23:59:59", -40),
		trade("3", "A", "2024-01-02T09:00:00", "2024-01-02T15:00:00", 25),
	}

	daily := GroupByExitDate(trades)
	require.Len(t, daily, 2)
	assert.Equal(t, 125.0, daily["2024-01-02"])
	assert.Equal(t, -40.0, daily["2024-01-01"])
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, daily.Dates())
	assert.Equal(t, 85.0, daily.Total())
}

func TestBotsInOrder(t *testing.T) {
	trades := []contracts.Trade{
		trade("1", "Zeta", "", "", 0),
		trade("2", "Alpha", "", "", 0),
		trade("3", "Zeta", "", "", 0),
		trade("4", "Mid", "", "", 0),
	}

	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, BotsInOrder(trades))
	assert.Len(t, GroupByBot(trades)["Zeta"], 2)
}
