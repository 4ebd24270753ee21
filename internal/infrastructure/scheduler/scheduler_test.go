package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingJob counts its runs and can fail on demand.
type countingJob struct {
	name string
	runs atomic.Int64
	err  error
}

func (j *countingJob) Name() string        { return j.name }
func (j *countingJob) Description() string { return "counting test job" }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	s := New(Config{})
	job := &countingJob{name: "dup"}

	require.NoError(t, s.Register(job, Every(time.Minute)))
	err := s.Register(job, Every(time.Minute))
	assert.ErrorIs(t, err, ErrJobExists)
}

func TestRegisterRejectsNil(t *testing.T) {
	s := New(Config{})
	assert.ErrorIs(t, s.Register(nil, Every(time.Minute)), ErrNilJob)
	assert.ErrorIs(t, s.Register(&countingJob{name: "x"}, nil), ErrNilSchedule)
}

func TestStartStop(t *testing.T) {
	s := New(Config{})
	require.NoError(t, s.Register(&countingJob{name: "idle"}, Every(time.Hour)))

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyRunning)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.ErrorIs(t, s.Stop(), ErrNotRunning)
}

func TestRunNow(t *testing.T) {
	s := New(Config{})
	job := &countingJob{name: "manual"}
	require.NoError(t, s.Register(job, Every(time.Hour)))

	res, err := s.RunNow(context.Background(), "manual")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.EqualValues(t, 1, job.runs.Load())

	_, err = s.RunNow(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestRunNowReportsFailure(t *testing.T) {
	s := New(Config{})
	job := &countingJob{name: "broken", err: errors.New("boom")}
	require.NoError(t, s.Register(job, Every(time.Hour)))

	res, err := s.RunNow(context.Background(), "broken")
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, err, res.Error)
}

func TestListJobs(t *testing.T) {
	s := New(Config{})
	require.NoError(t, s.Register(&countingJob{name: "a"}, Every(30*time.Minute)))
	require.NoError(t, s.Register(&countingJob{name: "b"}, DailyAt(10, 0)))

	infos := s.ListJobs()
	require.Len(t, infos, 2)
	for _, info := range infos {
		assert.False(t, info.NextRun.IsZero())
	}
}

func TestIntervalScheduleNext(t *testing.T) {
	sched := Every(15 * time.Minute)
	now := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(15*time.Minute), sched.Next(now))
	assert.Equal(t, "@every 15m0s", sched.String())
}

func TestDailyScheduleNext(t *testing.T) {
	sched := DailyAt(10, 0)

	// Before today's slot: fires today.
	morning := time.Date(2026, 9, 3, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC), sched.Next(morning))

	// After today's slot: rolls over to tomorrow.
	evening := time.Date(2026, 9, 3, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC), sched.Next(evening))

	// Exactly at the slot: also tomorrow, the slot has passed.
	exact := time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC), sched.Next(exact))

	assert.Equal(t, "@daily 10:00", sched.String())
}
