package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/threelines/tradeboard/backend/internal/api/handlers"
	"github.com/threelines/tradeboard/backend/pkg/logger"
	"github.com/threelines/tradeboard/backend/pkg/metrics"
	"github.com/threelines/tradeboard/backend/pkg/redis"
)

// RouterDeps bundles what the router wires together
type RouterDeps struct {
	Trades    *handlers.TradeHandler
	Analytics *handlers.AnalyticsHandler
	System    *handlers.SystemHandler
	Stream    http.Handler // websocket hub
	Metrics   *metrics.Metrics
	Limiter   *redis.RateLimiter
	Logger    *logger.Logger
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(d RouterDeps) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", d.System.Health).Methods(http.MethodGet)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}
	if d.Stream != nil {
		r.Handle("/ws/dashboard", d.Stream).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/trades", d.Trades.GetTrades).Methods(http.MethodGet)
	api.HandleFunc("/bots", d.Trades.GetBots).Methods(http.MethodGet)

	api.HandleFunc("/statistics", d.Analytics.GetStatistics).Methods(http.MethodGet)
	api.HandleFunc("/equity", d.Analytics.GetEquity).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", d.Analytics.GetDashboard).Methods(http.MethodGet)

	api.HandleFunc("/jobs", d.System.Jobs).Methods(http.MethodGet)

	if d.Limiter != nil {
		api.Use(rateLimitMiddleware(d.Limiter, redis.APIRateLimit, d.Logger))
	}

	r.Use(loggingMiddleware(d.Logger, d.Metrics))
	r.Use(recoveryMiddleware(d.Logger))

	return r
}
