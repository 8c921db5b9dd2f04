package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/threelines/tradeboard/backend/internal/contracts"
)

// FileSource reads trades from a JSON array or CSV export.
// The file is re-read on every call so edits show up on the next poll.
type FileSource struct {
	path string
}

// NewFileSource creates a source over path (.json or .csv)
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Trades returns the trades in the file that match filter, in file order
func (s *FileSource) Trades(_ context.Context, filter contracts.TradeFilter) ([]contracts.Trade, error) {
	trades, err := s.load()
	if err != nil {
		return nil, err
	}
	return filter.Apply(trades), nil
}

// BotLabels returns the distinct bot labels in the file
func (s *FileSource) BotLabels(_ context.Context) ([]string, error) {
	trades, err := s.load()
	if err != nil {
		return nil, err
	}
	return distinctSorted(trades), nil
}

func (s *FileSource) load() ([]contracts.Trade, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrSourceUnavailable, err)
	}

	trades, err := DecodeTrades(filepath.Ext(s.path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return trades, nil
}

// DecodeTrades parses a JSON array (".json") or CSV (".csv") trade list.
// Rows without an id receive a deterministic UUID derived from their content.
func DecodeTrades(ext string, data []byte) ([]contracts.Trade, error) {
	trades := make([]contracts.Trade, 0)

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &trades); err != nil {
			return nil, fmt.Errorf("decode json trades: %w", err)
		}
	case ".csv":
		if err := gocsv.Unmarshal(bytes.NewReader(data), &trades); err != nil {
			return nil, fmt.Errorf("decode csv trades: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported trade file extension %q", ext)
	}

	for i := range trades {
		if trades[i].ID == "" {
			trades[i].ID = deriveID(i, trades[i])
		}
	}
	return trades, nil
}

func deriveID(row int, t contracts.Trade) string {
	name := fmt.Sprintf("%d|%s|%s|%s|%v", row, t.BotLabel, t.EntryTime, t.ExitTime, t.ProfitLoss)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
