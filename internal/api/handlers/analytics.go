package handlers

import (
	"net/http"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/dashboard"
	"github.com/threelines/tradeboard/backend/internal/equity"
	"github.com/threelines/tradeboard/backend/internal/presentation"
	"github.com/threelines/tradeboard/backend/pkg/logger"
)

// AnalyticsHandler serves statistics, equity series and dashboard snapshots
// ⭐ SSOT: 통계/에쿼티 API 핸들러는 이 구조체에서만
type AnalyticsHandler struct {
	service *dashboard.Service
	logger  *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(svc *dashboard.Service, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc, logger: log}
}

// EquityResponse is the body of GET /api/equity
type EquityResponse struct {
	View   contracts.ViewMode      `json:"view"`
	Total  int                     `json:"total"`
	Points []contracts.EquityPoint `json:"points"`
	Ticks  contracts.AxisTicks     `json:"ticks"`
}

// GetStatistics computes the report for the query filter
// GET /api/statistics?botLabel=&startDate=&endDate=&format=display
func (h *AnalyticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Statistics(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute statistics")
		respondError(w, statusFor(err), "Failed to compute statistics")
		return
	}

	if r.URL.Query().Get("format") == "display" {
		respondJSON(w, http.StatusOK, presentation.FormatReport(report))
		return
	}

	if fields := report.NonFiniteFields(); len(fields) > 0 {
		respondNonFinite(w, fields)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetEquity builds the equity series. from/to narrow the returned points by
// position without touching cumulative values.
// GET /api/equity?view=daily|per-trade&from=&to=
func (h *AnalyticsHandler) GetEquity(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := contracts.ParseViewMode(r.URL.Query().Get("view"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, err := parseIndex(r, "from", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseIndex(r, "to", -1)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, _, err := h.service.Equity(r.Context(), filter, view)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build equity series")
		respondError(w, statusFor(err), "Failed to build equity series")
		return
	}

	visible := equity.Window(points, from, to)
	respondJSON(w, http.StatusOK, EquityResponse{
		View:   view,
		Total:  len(points),
		Points: visible,
		Ticks:  equity.SelectTicks(visible, view),
	})
}

// GetDashboard returns the latest polled snapshot, or a fresh one when the
// query carries a filter or a non-default view
// GET /api/dashboard?botLabel=&startDate=&endDate=&view=
func (h *AnalyticsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := contracts.ParseViewMode(r.URL.Query().Get("view"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var snap *dashboard.Snapshot
	if filter.IsZero() && view == contracts.ViewDaily {
		snap = h.service.Latest()
	}
	if snap == nil {
		snap, err = h.service.Snapshot(r.Context(), filter, view)
		if err != nil {
			h.logger.WithError(err).Error("Failed to build dashboard snapshot")
			respondError(w, statusFor(err), "Failed to build dashboard snapshot")
			return
		}
	}

	if fields := snap.Report.NonFiniteFields(); len(fields) > 0 {
		respondNonFinite(w, fields)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}
