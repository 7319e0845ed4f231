package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aleister1102/companywatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRunner struct {
	calls  int
	script func(call int) (CycleResult, error)
}

func (r *scriptedRunner) RunCycle(_ context.Context) (CycleResult, error) {
	r.calls++
	return r.script(r.calls)
}

type heartbeatRecorder struct {
	beats []models.Heartbeat
}

func (h *heartbeatRecorder) Heartbeat(_ context.Context, hb models.Heartbeat) {
	h.beats = append(h.beats, hb)
}

// fakeTime advances only when the scheduler sleeps. The sleeper cancels the
// loop after maxSleeps sleeps.
type fakeTime struct {
	now       time.Time
	sleeps    int
	maxSleeps int
	cancel    context.CancelFunc
}

func (ft *fakeTime) Now() time.Time { return ft.now }

func (ft *fakeTime) Sleep(ctx context.Context, d time.Duration) error {
	ft.sleeps++
	if ft.sleeps >= ft.maxSleeps {
		ft.cancel()
		return ctx.Err()
	}
	ft.now = ft.now.Add(d)
	return nil
}

func runScheduler(t *testing.T, runner CycleRunner, poll, quiet time.Duration, cycles int) (*Scheduler, *heartbeatRecorder, *fakeTime) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ft := &fakeTime{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), maxSleeps: cycles, cancel: cancel}
	beats := &heartbeatRecorder{}
	s := NewScheduler(testCompany, runner, beats, poll, quiet, zerolog.Nop(), WithClock(ft.Now), WithSleeper(ft.Sleep))

	require.NoError(t, s.Run(ctx))
	return s, beats, ft
}

func quietCycles(call int) (CycleResult, error) {
	return CycleResult{CycleID: "c"}, nil
}

func TestScheduler_HeartbeatThrottledToQuietInterval(t *testing.T) {
	runner := &scriptedRunner{script: quietCycles}

	s, beats, _ := runScheduler(t, runner, 60*time.Second, 600*time.Second, 25)

	assert.Equal(t, 25, runner.calls)
	require.Len(t, beats.beats, 2)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(600*time.Second), beats.beats[0].Timestamp)
	assert.Equal(t, start.Add(1200*time.Second), beats.beats[1].Timestamp)
	assert.Equal(t, 600*time.Second, beats.beats[0].Quiet)
	assert.Equal(t, testCompany, beats.beats[0].EntityID)

	stats := s.Stats()
	assert.Equal(t, 25, stats.Cycles)
	assert.Equal(t, 2, stats.Heartbeats)
	assert.Equal(t, 0, stats.ChangedCycles)
}

func TestScheduler_DefaultIntervalsEmitEveryQuietCycle(t *testing.T) {
	runner := &scriptedRunner{script: quietCycles}

	_, beats, _ := runScheduler(t, runner, time.Hour, 10*time.Minute, 3)

	// first cycle is at start, so only the following two are past the quiet window
	assert.Len(t, beats.beats, 2)
}

func TestScheduler_ChangeRestartsQuietWindow(t *testing.T) {
	runner := &scriptedRunner{script: func(call int) (CycleResult, error) {
		return CycleResult{CycleID: "c", AnyChanges: call == 8}, nil
	}}

	s, beats, _ := runScheduler(t, runner, 60*time.Second, 600*time.Second, 20)

	// change at t=420s pushes the next heartbeat to t=1020s
	require.Len(t, beats.beats, 1)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(1020*time.Second), beats.beats[0].Timestamp)
	assert.Equal(t, 1, s.Stats().ChangedCycles)
}

func TestScheduler_ErrorsNeverStopTheLoop(t *testing.T) {
	runner := &scriptedRunner{script: func(call int) (CycleResult, error) {
		return CycleResult{CycleID: "c"}, &models.FetchError{Field: models.FieldOfficers, Err: errUpstream}
	}}

	s, beats, _ := runScheduler(t, runner, 60*time.Second, 120*time.Second, 5)

	assert.Equal(t, 5, runner.calls)
	stats := s.Stats()
	assert.Equal(t, 5, stats.FailedCycles)
	// failed cycles count as quiet ones
	assert.Len(t, beats.beats, 2)
}

func TestScheduler_RunReturnsNilOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := &scriptedRunner{script: quietCycles}
	s := NewScheduler(testCompany, runner, &heartbeatRecorder{}, time.Hour, time.Hour, zerolog.Nop())

	assert.NoError(t, s.Run(ctx))
	assert.Equal(t, 1, runner.calls)
}

func TestScheduler_RunOnce(t *testing.T) {
	runner := &scriptedRunner{script: func(call int) (CycleResult, error) {
		if call == 1 {
			return CycleResult{CycleID: "ok", AnyChanges: true}, nil
		}
		return CycleResult{CycleID: "bad"}, errUpstream
	}}
	beats := &heartbeatRecorder{}
	s := NewScheduler(testCompany, runner, beats, time.Hour, time.Nanosecond, zerolog.Nop())

	result, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, result.AnyChanges)

	_, err = s.RunOnce(context.Background())
	assert.True(t, errors.Is(err, errUpstream))
	assert.Empty(t, beats.beats)
	assert.Equal(t, 1, s.Stats().FailedCycles)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, SleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}

func TestCycleTracker(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ct := NewCycleTracker(10*time.Minute, start)

	emit, quiet := ct.RecordCycle(start.Add(5*time.Minute), "a", false, false)
	assert.False(t, emit)
	assert.Equal(t, 5*time.Minute, quiet)

	emit, _ = ct.RecordCycle(start.Add(10*time.Minute), "b", false, false)
	assert.True(t, emit)
	assert.Equal(t, start.Add(10*time.Minute), ct.LastNoChangeEmit())

	emit, _ = ct.RecordCycle(start.Add(15*time.Minute), "c", true, false)
	assert.False(t, emit)
	assert.Equal(t, start.Add(15*time.Minute), ct.LastNoChangeEmit())

	emit, _ = ct.RecordCycle(start.Add(30*time.Minute), "d", true, true)
	assert.True(t, emit, "failed cycle is treated as quiet")

	stats := ct.Stats()
	assert.Equal(t, 4, stats.Cycles)
	assert.Equal(t, 1, stats.ChangedCycles)
	assert.Equal(t, 1, stats.FailedCycles)
	assert.Equal(t, 2, stats.Heartbeats)
	assert.Equal(t, "d", stats.LastCycleID)
}
