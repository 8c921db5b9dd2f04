// Package source provides the TradeSource implementations the dashboard reads
// closed trades from: the upstream REST API, PostgreSQL, or a local file.
package source

import (
	"fmt"
	"sort"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/pkg/config"
	"github.com/threelines/tradeboard/backend/pkg/database"
	"github.com/threelines/tradeboard/backend/pkg/httputil"
	"github.com/threelines/tradeboard/backend/pkg/logger"
	"github.com/threelines/tradeboard/backend/pkg/metrics"
	"github.com/threelines/tradeboard/backend/pkg/redis"
)

// Deps carries the infrastructure a source may need
type Deps struct {
	HTTP    *httputil.Client
	DB      *database.DB
	Cache   *redis.Cache
	Metrics *metrics.Metrics
	Logger  *logger.Logger
}

// New builds the source selected by cfg.Source.Kind, wrapped with caching and metrics
// ⭐ SSOT: 거래 소스 선택은 여기서만
func New(cfg *config.Config, deps Deps) (contracts.TradeSource, error) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	var base contracts.TradeSource
	switch cfg.Source.Kind {
	case config.SourceHTTP:
		if deps.HTTP == nil {
			return nil, fmt.Errorf("http source requires an HTTP client")
		}
		base = NewHTTPSource(deps.HTTP, cfg.Source.APIURL, log)
	case config.SourcePostgres:
		if deps.DB == nil {
			return nil, fmt.Errorf("postgres source requires a database pool")
		}
		base = NewPostgresSource(deps.DB)
	case config.SourceFile:
		base = NewFileSource(cfg.Source.File)
	default:
		return nil, fmt.Errorf("unknown trade source %q", cfg.Source.Kind)
	}

	if deps.Cache != nil && cfg.Source.CacheTTL > 0 {
		base = NewCachedSource(base, deps.Cache, cfg.Source.CacheTTL, log)
	}

	return Instrument(base, cfg.Source.Kind, deps.Metrics), nil
}

// distinctSorted returns the unique bot labels of trades in ascending order
func distinctSorted(trades []contracts.Trade) []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for _, t := range trades {
		if _, ok := seen[t.BotLabel]; ok {
			continue
		}
		seen[t.BotLabel] = struct{}{}
		labels = append(labels, t.BotLabel)
	}
	sort.Strings(labels)
	return labels
}
