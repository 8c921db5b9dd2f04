package handlers

import (
	"net/http"

	"github.com/threelines/tradeboard/backend/internal/dashboard"
	"github.com/threelines/tradeboard/backend/pkg/logger"
)

// TradeHandler serves raw trades and bot labels
type TradeHandler struct {
	service *dashboard.Service
	logger  *logger.Logger
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(svc *dashboard.Service, log *logger.Logger) *TradeHandler {
	return &TradeHandler{service: svc, logger: log}
}

// GetTrades returns the trades matching the query filter
// GET /api/trades?botLabel=&startDate=&endDate=
func (h *TradeHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	trades, err := h.service.Trades(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch trades")
		respondError(w, statusFor(err), "Failed to fetch trades")
		return
	}

	respondJSON(w, http.StatusOK, trades)
}

// GetBots returns the distinct bot labels
// GET /api/bots
func (h *TradeHandler) GetBots(w http.ResponseWriter, r *http.Request) {
	labels, err := h.service.BotLabels(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch bot labels")
		respondError(w, statusFor(err), "Failed to fetch bot labels")
		return
	}

	respondJSON(w, http.StatusOK, labels)
}
