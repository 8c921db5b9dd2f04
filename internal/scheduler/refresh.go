package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/threelines/tradeboard/backend/internal/dashboard"
	"github.com/threelines/tradeboard/backend/pkg/logger"
)

// Publisher receives every refreshed snapshot
type Publisher interface {
	Publish(ctx context.Context, snap *dashboard.Snapshot) error
}

// RefreshJob recomputes the default dashboard snapshot on every poll tick
// and hands it to the publishers (websocket hub, Redis channel)
type RefreshJob struct {
	service    *dashboard.Service
	publishers []Publisher
	interval   time.Duration
	logger     *logger.Logger

	mu   sync.Mutex
	last *RunSummary
}

// NewRefreshJob creates a refresh job running every interval
func NewRefreshJob(svc *dashboard.Service, interval time.Duration, log *logger.Logger, publishers ...Publisher) *RefreshJob {
	return &RefreshJob{
		service:    svc,
		publishers: publishers,
		interval:   interval,
		logger:     log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "dashboard_refresh"
}

// Schedule returns the poll interval as a cron descriptor
func (j *RefreshJob) Schedule() string {
	return fmt.Sprintf("@every %s", j.interval)
}

// Run recomputes the snapshot. Publisher failures are logged, not returned,
// so one slow subscriber channel does not trigger a recompute retry.
func (j *RefreshJob) Run(ctx context.Context) error {
	snap, err := j.service.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh snapshot: %w", err)
	}
	j.record(snap)

	for _, p := range j.publishers {
		if err := p.Publish(ctx, snap); err != nil {
			j.logger.WithError(err).Warn("Snapshot publish failed")
		}
	}
	return nil
}

// LastSummary describes the snapshot of the latest successful run
func (j *RefreshJob) LastSummary() *RunSummary {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last
}

func (j *RefreshJob) record(snap *dashboard.Snapshot) {
	sum := &RunSummary{Trades: len(snap.Trades)}
	if snap.Report != nil {
		sum.Bots = len(snap.Report.PerBotTWRs)
		sum.TotalPnL = snap.Report.TotalProfitLoss
	}

	j.mu.Lock()
	j.last = sum
	j.mu.Unlock()
}
