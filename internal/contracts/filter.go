package contracts

import (
	"fmt"
	"strings"
	"time"
)

// TradeFilter narrows the trade universe by bot and entry-time range
// ⭐ SSOT: 봇/기간 필터는 여기서만 정의
type TradeFilter struct {
	BotLabel  string     `json:"botLabel,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// IsZero reports whether the filter selects the whole universe
func (f TradeFilter) IsZero() bool {
	return f.BotLabel == "" && f.StartDate == nil && f.EndDate == nil
}

// Validate rejects inverted date ranges
func (f TradeFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return fmt.Errorf("%w: end date %s before start date %s",
			ErrInvalidFilter, f.EndDate.Format(time.RFC3339), f.StartDate.Format(time.RFC3339))
	}
	return nil
}

// Matches applies bot equality and an inclusive [start, end] range on entry time.
// Trades whose entry time cannot be parsed never match a dated filter.
func (f TradeFilter) Matches(t Trade) bool {
	if f.BotLabel != "" && t.BotLabel != f.BotLabel {
		return false
	}
	if f.StartDate == nil && f.EndDate == nil {
		return true
	}

	entry, ok := t.EntryAt()
	if !ok {
		return false
	}
	if f.StartDate != nil && entry.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && entry.After(*f.EndDate) {
		return false
	}
	return true
}

// Apply returns the trades matching the filter, preserving input order
func (f TradeFilter) Apply(trades []Trade) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Key is a stable string form used for cache keys
func (f TradeFilter) Key() string {
	start, end := "-", "-"
	if f.StartDate != nil {
		start = f.StartDate.UTC().Format(time.RFC3339Nano)
	}
	if f.EndDate != nil {
		end = f.EndDate.UTC().Format(time.RFC3339Nano)
	}
	bot := f.BotLabel
	if bot == "" {
		bot = "*"
	}
	return fmt.Sprintf("%s|%s|%s", bot, start, end)
}

// ParseEndBound parses an inclusive upper bound. A date-only value covers the
// whole day, so it widens to the last instant of that date.
func ParseEndBound(s string) (time.Time, bool) {
	ts, ok := ParseTimestamp(s)
	if !ok {
		return ts, false
	}
	if len(strings.TrimSpace(s)) == len(DateLayout) {
		ts = ts.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return ts, true
}
