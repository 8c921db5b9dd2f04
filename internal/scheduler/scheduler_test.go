package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threelines/tradeboard/backend/internal/analytics"
	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/dashboard"
	"github.com/threelines/tradeboard/backend/internal/source"
	"github.com/threelines/tradeboard/backend/pkg/logger"
)

type stubJob struct {
	name  string
	fails int
	mu    sync.Mutex
	runs  int
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return "@every 1h" }
func (j *stubJob) Run(context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs++
	if j.runs <= j.fails {
		return errors.New("transient")
	}
	return nil
}

func TestAddJob(t *testing.T) {
	s := New(logger.Nop())

	require.NoError(t, s.AddJob(&stubJob{name: "b"}))
	require.NoError(t, s.AddJob(&stubJob{name: "a"}))
	assert.Error(t, s.AddJob(&stubJob{name: "a"}))

	assert.Equal(t, []string{"a", "b"}, s.GetAllJobs())

	require.NoError(t, s.RemoveJob("a"))
	assert.Error(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.GetAllJobs())
}

func TestRunJob_RetriesAndHistory(t *testing.T) {
	s := New(logger.Nop()).WithRetry(2, time.Millisecond)
	job := &stubJob{name: "flaky", fails: 2}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("flaky"))
	assert.Equal(t, 3, job.runs)

	stats := s.GetJobStats()["flaky"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 1, stats.SuccessCount)
	require.NotNil(t, stats.LastSuccess)
	assert.Nil(t, stats.LastFailure)
}

func TestRunJob_Failure(t *testing.T) {
	s := New(logger.Nop()).WithRetry(1, time.Millisecond)
	require.NoError(t, s.AddJob(&stubJob{name: "broken", fails: 10}))

	err := s.RunJob("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transient")

	history, err := s.GetJobHistory("broken")
	require.NoError(t, err)
	assert.Len(t, history.Failures(), 1)
	assert.Equal(t, 0.0, history.SuccessRate())
	assert.Equal(t, 2, history.Latest(1)[0].Attempts)
	assert.Nil(t, history.LastSummary())

	assert.Error(t, s.RunJob("missing"))
}

func TestJobHistory_Cap(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < maxHistory+10; i++ {
		h.Add(JobResult{Success: i%2 == 0, Summary: &RunSummary{Trades: i}})
	}

	assert.Len(t, h.Results, maxHistory)
	assert.Len(t, h.Latest(5), 5)
	assert.Empty(t, h.Latest(0))
	assert.Equal(t, 0.5, h.SuccessRate())
	// newest successful run is i = maxHistory+8
	assert.Equal(t, maxHistory+8, h.LastSummary().Trades)
}

type recordingPublisher struct {
	got []*dashboard.Snapshot
	err error
}

func (p *recordingPublisher) Publish(_ context.Context, snap *dashboard.Snapshot) error {
	p.got = append(p.got, snap)
	return p.err
}

func TestRefreshJob(t *testing.T) {
	trades := []contracts.Trade{
		{ID: "1", BotLabel: "A", EntryTime: "2024-01-01T09:00:00", ExitTime: "2024-01-01T10:00:00", ProfitLoss: 100},
	}
	svc := dashboard.NewService(source.NewMemorySource(trades), analytics.NewEngine(analytics.DefaultParams()), nil, nil)

	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("closed")}
	job := NewRefreshJob(svc, 5*time.Second, logger.Nop(), failing, ok)

	assert.Equal(t, "@every 5s", job.Schedule())
	require.NoError(t, job.Run(context.Background()))

	require.Len(t, ok.got, 1)
	assert.Len(t, failing.got, 1)
	assert.Same(t, svc.Latest(), ok.got[0])
	assert.Equal(t, 100.0, ok.got[0].Report.TotalProfitLoss)
	assert.Equal(t, &RunSummary{Trades: 1, Bots: 1, TotalPnL: 100}, job.LastSummary())
}

func TestRunJob_RecordsRefreshSummary(t *testing.T) {
	trades := []contracts.Trade{
		{ID: "1", BotLabel: "A", EntryTime: "2024-01-01T09:00:00", ExitTime: "2024-01-01T10:00:00", ProfitLoss: 100},
		{ID: "2", BotLabel: "B", EntryTime: "2024-01-02T09:00:00", ExitTime: "2024-01-02T10:00:00", ProfitLoss: -30},
	}
	svc := dashboard.NewService(source.NewMemorySource(trades), analytics.NewEngine(analytics.DefaultParams()), nil, nil)

	s := New(logger.Nop())
	job := NewRefreshJob(svc, 5*time.Second, logger.Nop())
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJob(job.Name()))

	stats := s.GetJobStats()[job.Name()]
	require.NotNil(t, stats.LastSummary)
	assert.Equal(t, 2, stats.LastSummary.Trades)
	assert.Equal(t, 2, stats.LastSummary.Bots)
	assert.Equal(t, 70.0, stats.LastSummary.TotalPnL)

	history, err := s.GetJobHistory(job.Name())
	require.NoError(t, err)
	assert.Equal(t, 1, history.Latest(1)[0].Attempts)
}

func TestRefreshJob_SourceFailure(t *testing.T) {
	mem := source.NewMemorySource(nil)
	mem.FailWith(contracts.ErrSourceUnavailable)
	svc := dashboard.NewService(mem, analytics.NewEngine(analytics.DefaultParams()), nil, nil)

	pub := &recordingPublisher{}
	err := NewRefreshJob(svc, time.Second, logger.Nop(), pub).Run(context.Background())

	assert.True(t, errors.Is(err, contracts.ErrSourceUnavailable))
	assert.Empty(t, pub.got)
}
