package scheduler

import (
	"context"
	"fmt"
	"testing"

	"github.com/wonny/sectorpulse/pkg/config"
	"github.com/wonny/sectorpulse/pkg/logger"
)

type noopJob struct {
	name string
}

func (j noopJob) Name() string              { return j.name }
func (j noopJob) Run(context.Context) error { return nil }
func (j noopJob) Schedule() string          { return "0 0 1 * * *" }

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestAddJob_Duplicate(t *testing.T) {
	s := New(testLogger())

	if err := s.AddJob(noopJob{name: "batch"}); err != nil {
		t.Fatalf("AddJob failed: %v", err)
	}
	if err := s.AddJob(noopJob{name: "batch"}); err == nil {
		t.Error("expected error adding duplicate job")
	}
}

func TestAddJob_BadSchedule(t *testing.T) {
	s := New(testLogger())

	job := badScheduleJob{}
	if err := s.AddJob(job); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

type badScheduleJob struct{}

func (badScheduleJob) Name() string              { return "bad" }
func (badScheduleJob) Run(context.Context) error { return nil }
func (badScheduleJob) Schedule() string          { return "not a cron spec" }

func TestGetAllJobs(t *testing.T) {
	s := New(testLogger())

	for i := 0; i < 3; i++ {
		if err := s.AddJob(noopJob{name: fmt.Sprintf("job-%d", i)}); err != nil {
			t.Fatalf("AddJob failed: %v", err)
		}
	}

	if got := len(s.GetAllJobs()); got != 3 {
		t.Errorf("GetAllJobs() returned %d jobs, want 3", got)
	}
}

func TestRunJob_Unknown(t *testing.T) {
	s := New(testLogger())
	if err := s.RunJob("missing"); err == nil {
		t.Error("expected error running unknown job")
	}
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < 110; i++ {
		h.AddResult(JobResult{JobName: "batch", Success: i%2 == 0})
	}

	// History is capped at 100 entries.
	if len(h.Results) != 100 {
		t.Errorf("history holds %d results, want 100", len(h.Results))
	}

	if got := len(h.GetLatestResults(10)); got != 10 {
		t.Errorf("GetLatestResults(10) returned %d", got)
	}

	rate := h.GetSuccessRate()
	if rate < 0.4 || rate > 0.6 {
		t.Errorf("success rate = %v, want about 0.5", rate)
	}
}

func TestJobHistory_Empty(t *testing.T) {
	h := &JobHistory{}
	if rate := h.GetSuccessRate(); rate != 0 {
		t.Errorf("empty history success rate = %v, want 0", rate)
	}
	if got := h.GetLatestResults(5); len(got) != 0 {
		t.Errorf("GetLatestResults on empty history = %v", got)
	}
}
