package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/pkg/httputil"
	"github.com/threelines/tradeboard/backend/pkg/logger"
)

// HTTPSource reads trades from the upstream trading REST API
type HTTPSource struct {
	client  *httputil.Client
	baseURL string
	logger  *logger.Logger
}

// NewHTTPSource creates a source rooted at baseURL, e.g. "http://localhost:5000/api"
func NewHTTPSource(client *httputil.Client, baseURL string, log *logger.Logger) *HTTPSource {
	return &HTTPSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
	}
}

// isoMillis matches the upstream's expected query format, e.g. 2024-01-02T00:00:00.000Z
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// TradesURL builds GET {base}/trades with the filter as query parameters
func (s *HTTPSource) TradesURL(filter contracts.TradeFilter) string {
	q := url.Values{}
	if filter.BotLabel != "" {
		q.Set("botLabel", filter.BotLabel)
	}
	if filter.StartDate != nil {
		q.Set("startDate", filter.StartDate.UTC().Format(isoMillis))
	}
	if filter.EndDate != nil {
		q.Set("endDate", filter.EndDate.UTC().Format(isoMillis))
	}

	u := s.baseURL + "/trades"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// Trades fetches the trades matching filter
func (s *HTTPSource) Trades(ctx context.Context, filter contracts.TradeFilter) ([]contracts.Trade, error) {
	var trades []contracts.Trade
	if err := s.client.GetJSON(ctx, s.TradesURL(filter), &trades); err != nil {
		return nil, s.upstreamError(err, "Failed to fetch trades")
	}
	if trades == nil {
		trades = []contracts.Trade{}
	}
	return trades, nil
}

// BotLabels fetches GET {base}/bots
func (s *HTTPSource) BotLabels(ctx context.Context) ([]string, error) {
	var labels []string
	if err := s.client.GetJSON(ctx, s.baseURL+"/bots", &labels); err != nil {
		return nil, s.upstreamError(err, "Failed to fetch bot labels")
	}
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}

// upstreamError surfaces the server's "message" (or "error") field when the
// API answered, otherwise the generic fallback.
func (s *HTTPSource) upstreamError(err error, fallback string) error {
	msg := fallback

	var se *httputil.StatusError
	if errors.As(err, &se) {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(se.Body, &body) == nil {
			switch {
			case body.Message != "":
				msg = body.Message
			case body.Error != "":
				msg = body.Error
			}
		}
	}

	s.logger.WithError(err).WithField("base_url", s.baseURL).Warn(msg)
	return fmt.Errorf("%w: %s", contracts.ErrSourceUnavailable, msg)
}
