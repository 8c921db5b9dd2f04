package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/threelines/tradeboard/backend/internal/analytics"
	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/dashboard"
	"github.com/threelines/tradeboard/backend/internal/source"
	"github.com/threelines/tradeboard/backend/pkg/config"
	"github.com/threelines/tradeboard/backend/pkg/database"
	"github.com/threelines/tradeboard/backend/pkg/httputil"
	"github.com/threelines/tradeboard/backend/pkg/logger"
	"github.com/threelines/tradeboard/backend/pkg/metrics"
	"github.com/threelines/tradeboard/backend/pkg/redis"
)

// cachePrefix namespaces every Redis key this service writes
const cachePrefix = "tradeboard"

// deps is the wired object graph shared by the commands
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	redis   *redis.Client
	cache   *redis.Cache
	db      *database.DB
	source  contracts.TradeSource
	service *dashboard.Service
}

// loadConfig reads the environment and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if sourceKind != "" {
		cfg.Source.Kind = sourceKind
	}
	if sourceFile != "" {
		cfg.Source.File = sourceFile
	}
	if apiURL != "" {
		cfg.Source.APIURL = apiURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// initDeps wires config, logging, storage and the dashboard service
func initDeps(ctx context.Context) (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	d := &deps{
		cfg: cfg,
		log: logger.New(cfg),
	}
	if cfg.MetricsEnabled {
		d.metrics = metrics.New()
	}

	d.redis, err = redis.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	if d.redis.Enabled() {
		d.cache = redis.NewCache(d.redis, cachePrefix)
		d.log.Info("Connected to Redis")
	}

	if cfg.Source.Kind == config.SourcePostgres {
		d.db, err = database.New(ctx, cfg)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		d.log.Info("Connected to database")
	}

	d.source, err = source.New(cfg, source.Deps{
		HTTP:    httputil.New(cfg, d.log),
		DB:      d.db,
		Cache:   d.cache,
		Metrics: d.metrics,
		Logger:  d.log,
	})
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("create trade source: %w", err)
	}

	engine := analytics.NewEngine(analytics.ParamsFromConfig(cfg.Analytics))
	d.service = dashboard.NewService(d.source, engine, d.metrics, d.log)

	d.log.WithFields(map[string]interface{}{
		"source":        cfg.Source.Kind,
		"poll_interval": cfg.Source.PollInterval,
		"redis":         d.redis.Enabled(),
	}).Debug("Dependencies initialised")

	return d, nil
}

// Close releases pooled connections
func (d *deps) Close() {
	if d.db != nil {
		d.db.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
}

// commandContext bounds one-shot CLI commands
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}

// filterFlags are shared by the stats and equity commands
type filterFlags struct {
	bot  string
	from string
	to   string
}

func (f *filterFlags) filter() (contracts.TradeFilter, error) {
	filter := contracts.TradeFilter{BotLabel: f.bot}

	if f.from != "" {
		ts, ok := contracts.ParseTimestamp(f.from)
		if !ok {
			return filter, fmt.Errorf("invalid --from %q (want YYYY-MM-DD or RFC 3339)", f.from)
		}
		filter.StartDate = &ts
	}
	if f.to != "" {
		ts, ok := contracts.ParseEndBound(f.to)
		if !ok {
			return filter, fmt.Errorf("invalid --to %q (want YYYY-MM-DD or RFC 3339)", f.to)
		}
		filter.EndDate = &ts
	}

	return filter, filter.Validate()
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.bot, "bot", "", "bot label (empty = all bots)")
	cmd.Flags().StringVar(&f.from, "from", "", "entry time lower bound, inclusive")
	cmd.Flags().StringVar(&f.to, "to", "", "entry time upper bound, inclusive (a bare date covers the whole day)")
}
