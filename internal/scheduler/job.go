package scheduler

import (
	"context"
	"time"
)

// Job is one scheduled unit of work
// ⭐ SSOT: 스케줄 작업 인터페이스는 여기서만 정의
type Job interface {
	Name() string
	Run(ctx context.Context) error

	// Schedule is a cron expression with a seconds field, or a descriptor
	// such as "@every 5s"
	Schedule() string
}

// RunSummary is what a refresh covered: the trades it read and the P&L they carried
type RunSummary struct {
	Trades   int     `json:"trades"`
	Bots     int     `json:"bots"`
	TotalPnL float64 `json:"total_pnl"`
}

// Summarizer is implemented by jobs that can describe their latest successful run
type Summarizer interface {
	LastSummary() *RunSummary
}

// JobResult is one execution of a job, retries included
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Attempts  int           `json:"attempts"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Summary   *RunSummary   `json:"summary,omitempty"`
}

// 5초 폴링 기준 약 16분
const maxHistory = 200

// JobHistory keeps the most recent results of one job, oldest first
type JobHistory struct {
	Results []JobResult
}

// Add appends a result, dropping the oldest beyond maxHistory
func (h *JobHistory) Add(result JobResult) {
	h.Results = append(h.Results, result)
	if over := len(h.Results) - maxHistory; over > 0 {
		h.Results = h.Results[over:]
	}
}

// Latest returns up to n most recent results
func (h *JobHistory) Latest(n int) []JobResult {
	if n > len(h.Results) {
		n = len(h.Results)
	}
	if n <= 0 {
		return []JobResult{}
	}
	return h.Results[len(h.Results)-n:]
}

// Failures returns the failed results
func (h *JobHistory) Failures() []JobResult {
	failed := make([]JobResult, 0)
	for _, r := range h.Results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}

// SuccessRate is the share of successful runs (0.0 - 1.0)
func (h *JobHistory) SuccessRate() float64 {
	if len(h.Results) == 0 {
		return 0
	}
	return float64(len(h.Results)-len(h.Failures())) / float64(len(h.Results))
}

// LastSummary returns the summary of the newest successful run that reported one
func (h *JobHistory) LastSummary() *RunSummary {
	for i := len(h.Results) - 1; i >= 0; i-- {
		if r := h.Results[i]; r.Success && r.Summary != nil {
			return r.Summary
		}
	}
	return nil
}
