package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threelines/tradeboard/backend/internal/analytics"
	"github.com/threelines/tradeboard/backend/internal/api/handlers"
	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/dashboard"
	"github.com/threelines/tradeboard/backend/internal/source"
	"github.com/threelines/tradeboard/backend/pkg/config"
	"github.com/threelines/tradeboard/backend/pkg/logger"
	"github.com/threelines/tradeboard/backend/pkg/metrics"
	"github.com/threelines/tradeboard/backend/pkg/redis"
)

func closed(id, bot, day string, pnl float64) contracts.Trade {
	return contracts.Trade{
		ID:         id,
		BotLabel:   bot,
		EntryTime:  day + "T09:00:00",
		ExitTime:   day + "T10:00:00",
		ProfitLoss: pnl,
		Side:       contracts.SideLong,
	}
}

func scenario() []contracts.Trade {
	return []contracts.Trade{
		closed("t1", "A", "2024-01-01", 100),
		closed("t2", "A", "2024-01-02", -40),
		closed("t3", "A", "2024-01-03", 25),
		closed("t4", "B", "2024-01-03", 5),
	}
}

type fixture struct {
	router  http.Handler
	mem     *source.MemorySource
	service *dashboard.Service
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, checks map[string]handlers.HealthCheck) *fixture {
	t.Helper()

	log := logger.Nop()
	m := metrics.New()
	mem := source.NewMemorySource(scenario())
	svc := dashboard.NewService(mem, analytics.NewEngine(analytics.DefaultParams()), m, log)

	rc, err := redis.New(context.Background(), &config.Config{})
	require.NoError(t, err)

	router := NewRouter(RouterDeps{
		Trades:    handlers.NewTradeHandler(svc, log),
		Analytics: handlers.NewAnalyticsHandler(svc, log),
		System:    handlers.NewSystemHandler("tradeboard-api", checks, nil),
		Metrics:   m,
		Limiter:   redis.NewRateLimiter(rc, "test"),
		Logger:    log,
	})

	return &fixture{router: router, mem: mem, service: svc, metrics: m}
}

func (f *fixture) get(t *testing.T, url string, dest interface{}) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if dest != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
	}
	return rec
}

func TestHealth(t *testing.T) {
	f := newFixture(t, map[string]handlers.HealthCheck{
		"source": func(context.Context) error { return nil },
	})

	var body map[string]interface{}
	rec := f.get(t, "/health", &body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "tradeboard-api", body["service"])

	down := newFixture(t, map[string]handlers.HealthCheck{
		"redis": func(context.Context) error { return errors.New("refused") },
	})
	assert.Equal(t, http.StatusServiceUnavailable, down.get(t, "/health", nil).Code)
}

func TestTradesAndBots(t *testing.T) {
	f := newFixture(t, nil)

	var trades []contracts.Trade
	rec := f.get(t, "/api/trades?botLabel=A", &trades)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, trades, 3)

	rec = f.get(t, "/api/trades?startDate=2024-01-02&endDate=2024-01-02T23:59:59", &trades)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, trades, 1)

	rec = f.get(t, "/api/trades?startDate=2024-01-01&endDate=2024-01-03", &trades)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, trades, 4, "a bare endDate includes trades entered that day")

	var report contracts.StatisticsReport
	f.get(t, "/api/statistics?botLabel=A&endDate=2024-01-03", &report)
	assert.Equal(t, 3, report.TotalTrades)

	var bots []string
	f.get(t, "/api/bots", &bots)
	assert.Equal(t, []string{"A", "B"}, bots)
}

func TestBadFilters(t *testing.T) {
	f := newFixture(t, nil)

	tests := []string{
		"/api/trades?startDate=yesterday",
		"/api/statistics?startDate=2024-01-03&endDate=2024-01-01",
		"/api/equity?view=weekly",
		"/api/equity?from=abc",
		"/api/dashboard?view=monthly",
	}

	for _, url := range tests {
		assert.Equal(t, http.StatusBadRequest, f.get(t, url, nil).Code, url)
	}
}

func TestStatistics(t *testing.T) {
	f := newFixture(t, nil)

	var report contracts.StatisticsReport
	rec := f.get(t, "/api/statistics?botLabel=A", &report)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 3, report.TotalTrades)
	assert.Equal(t, 85.0, report.TotalProfitLoss)
	assert.InDelta(t, 66.67, report.WinRate, 0.01)
	assert.Empty(t, report.PerBotTWRs)

	f.get(t, "/api/statistics", &report)
	assert.Len(t, report.PerBotTWRs, 2)
}

func TestStatistics_DisplayFormat(t *testing.T) {
	f := newFixture(t, nil)

	var display map[string]interface{}
	rec := f.get(t, "/api/statistics?botLabel=A&format=display", &display)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "66.67%", display["winRate"])
	assert.Equal(t, "$85.00", display["totalProfitLoss"])
	assert.Equal(t, "3.13", display["profitFactor"])
}

func TestStatistics_NonFinite(t *testing.T) {
	f := newFixture(t, nil)
	f.mem.Replace([]contracts.Trade{closed("x", "A", "2024-01-01", math.NaN())})

	rec := f.get(t, "/api/statistics", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Fields)
}

func TestEquity(t *testing.T) {
	f := newFixture(t, nil)

	var resp handlers.EquityResponse
	rec := f.get(t, "/api/equity?botLabel=A&view=per-trade", &resp)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, resp.Points, 3)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, []float64{100, 60, 85}, []float64{
		resp.Points[0].CumulativeEquity, resp.Points[1].CumulativeEquity, resp.Points[2].CumulativeEquity,
	})

	rec = f.get(t, "/api/equity?botLabel=A&view=per-trade&from=1&to=1", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Points, 1)
	assert.Equal(t, 60.0, resp.Points[0].CumulativeEquity)
	assert.Equal(t, 2, resp.Points[0].Index)
	assert.Equal(t, 3, resp.Total)

	rec = f.get(t, "/api/equity", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contracts.ViewDaily, resp.View)
	require.Len(t, resp.Points, 3)
	assert.Equal(t, 90.0, resp.Points[2].CumulativeEquity)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t, nil)

	var snap dashboard.Snapshot
	rec := f.get(t, "/api/dashboard", &snap)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, snap.Report.TotalTrades)

	_, err := f.service.Refresh(context.Background())
	require.NoError(t, err)
	f.mem.Replace(nil)

	rec = f.get(t, "/api/dashboard", &snap)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, snap.Report.TotalTrades, "unfiltered daily view serves the latest refresh")

	rec = f.get(t, "/api/dashboard?botLabel=A", &snap)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, snap.Report.TotalTrades)
}

func TestSourceFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.mem.FailWith(contracts.ErrSourceUnavailable)

	assert.Equal(t, http.StatusBadGateway, f.get(t, "/api/statistics", nil).Code)
	assert.Equal(t, http.StatusBadGateway, f.get(t, "/api/bots", nil).Code)
}

func TestMetricsAndJobs(t *testing.T) {
	f := newFixture(t, nil)
	f.get(t, "/api/bots", nil)

	rec := f.get(t, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tradeboard_http_requests_total{route="/api/bots",status="200"} 1`)

	var jobs map[string]interface{}
	rec = f.get(t, "/api/jobs", &jobs)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, jobs)
}

func TestRecoveryMiddleware(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	r.Use(recoveryMiddleware(logger.Nop()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
