package contracts

import (
	"strings"
	"time"
)

// Trade represents one closed trade produced by a bot
// ⭐ SSOT: 체결 완료 거래 구조체 (immutable input)
type Trade struct {
	ID         string  `json:"id" csv:"id"`
	BotLabel   string  `json:"botLabel" csv:"bot_label"`
	EntryTime  string  `json:"entryTime" csv:"entry_time"` // naive ISO-8601
	ExitTime   string  `json:"exitTime" csv:"exit_time"`   // naive ISO-8601
	EntryPrice float64 `json:"entryPrice" csv:"entry_price"`
	ExitPrice  float64 `json:"exitPrice" csv:"exit_price"`
	Quantity   float64 `json:"quantity" csv:"quantity"`
	ProfitLoss float64 `json:"profitLoss" csv:"profit_loss"` // net of costs
	Side       Side    `json:"side" csv:"side"`
}

// Side represents LONG or SHORT
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// UnmarshalCSV normalises the side column of CSV exports
func (s *Side) UnmarshalCSV(value string) error {
	*s = Side(strings.ToUpper(strings.TrimSpace(value)))
	return nil
}

// MarshalCSV writes the side column
func (s Side) MarshalCSV() (string, error) {
	return string(s), nil
}

// IsWin reports whether the trade is a winner. Zero P&L is not a win.
func (t Trade) IsWin() bool {
	return t.ProfitLoss > 0
}

// ExitDate returns the calendar-date key of the exit timestamp ("YYYY-MM-DD")
func (t Trade) ExitDate() string {
	return DateKey(t.ExitTime)
}

// EntryAt parses the entry timestamp
func (t Trade) EntryAt() (time.Time, bool) {
	return ParseTimestamp(t.EntryTime)
}

// ExitAt parses the exit timestamp
func (t Trade) ExitAt() (time.Time, bool) {
	return ParseTimestamp(t.ExitTime)
}

// DateLayout is the fixed-width, zero-padded daily bucket format.
// Lexical order of keys equals chronological order.
const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	DateLayout,
}

// ParseTimestamp parses an ISO-8601 timestamp.
// Timezone-naive values are read as wall-clock time in UTC; values carrying an
// offset keep it, so Weekday() and the date key agree with the string itself.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// DateKey returns the first 10 characters of an ISO-8601 timestamp
func DateKey(ts string) string {
	if len(ts) < len(DateLayout) {
		return ts
	}
	return ts[:len(DateLayout)]
}

// FormatTimestamp renders t in the naive layout used on the wire
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
