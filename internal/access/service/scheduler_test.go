package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/stretchr/testify/require"
)

const (
	premiumChannel int64 = -1001
	freeChannel    int64 = -1002
)

func schedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		PremiumChannelID: premiumChannel,
		FreeChannelID:    freeChannel,
		StopTimeout:      time.Second,
	}
}

func TestExpireAndReleaseIsBestEffort(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	gw := newFakeGateway()
	gw.fail[2] = true
	s := e.newScheduler(t, gw, schedulerConfig())

	redeemFor(t, e, 1, 1)
	redeemFor(t, e, 2, 1)
	redeemFor(t, e, 3, 1)

	e.clock.Set(t0.Add(2 * time.Hour))
	rep, err := s.RunJob(ctx, JobExpireAndRelease)
	require.NoError(t, err)
	require.Equal(t, JobExpireAndRelease, rep.Job)
	require.Equal(t, TriggerManual, rep.Trigger)
	require.Equal(t, 3, rep.Selected)
	require.Equal(t, 2, rep.Succeeded)
	require.Equal(t, 1, rep.Failed)

	removes := gw.Calls("remove")
	require.Len(t, removes, 3)
	for _, c := range removes {
		require.Equal(t, premiumChannel, c.ChannelID)
	}
	require.Len(t, gw.Calls("notify"), 2)

	// The failed removal is not retried: the row is already expired.
	rep, err = s.RunJob(ctx, JobExpireAndRelease)
	require.NoError(t, err)
	require.Zero(t, rep.Selected)
	require.Len(t, gw.Calls("remove"), 3)
}

func TestProcessQueueLinkMode(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	gw := newFakeGateway()
	s := e.newScheduler(t, gw, schedulerConfig())

	_, _, err := e.queue.Enqueue(ctx, 10)
	require.NoError(t, err)
	e.clock.Set(t0.Add(time.Minute))
	_, _, err = e.queue.Enqueue(ctx, 11)
	require.NoError(t, err)

	e.clock.Set(t0.Add(5 * time.Minute))
	rep, err := s.RunJob(ctx, JobProcessQueue)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Selected)
	require.Equal(t, 1, rep.Succeeded)

	links := gw.Calls("link")
	require.Len(t, links, 1)
	require.Equal(t, freeChannel, links[0].ChannelID)
	require.Equal(t, int64(10), links[0].UserID)

	notes := gw.Calls("notify")
	require.Len(t, notes, 1)
	require.Contains(t, notes[0].Text, "https://t.me/+link-10")
	require.Empty(t, gw.Calls("invite"))
}

func TestProcessQueueUsesCurrentWaitTime(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	gw := newFakeGateway()
	s := e.newScheduler(t, gw, schedulerConfig())

	_, _, err := e.queue.Enqueue(ctx, 10)
	require.NoError(t, err)
	require.NoError(t, e.settings.SetWaitTimeMinutes(ctx, 30))

	e.clock.Set(t0.Add(10 * time.Minute))
	rep, err := s.RunJob(ctx, JobProcessQueue)
	require.NoError(t, err)
	require.Zero(t, rep.Selected)
}

func TestProcessQueueApproveMode(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	gw := newFakeGateway()
	gw.fail[21] = true
	cfg := schedulerConfig()
	cfg.AdmissionMode = domain.AdmissionApprove
	s := e.newScheduler(t, gw, cfg)

	_, _, err := e.queue.Enqueue(ctx, 20)
	require.NoError(t, err)
	_, _, err = e.queue.Enqueue(ctx, 21)
	require.NoError(t, err)

	e.clock.Set(t0.Add(time.Hour))
	rep, err := s.RunJob(ctx, JobProcessQueue)
	require.NoError(t, err)
	require.Equal(t, 2, rep.Selected)
	require.Equal(t, 1, rep.Succeeded)
	require.Equal(t, 1, rep.Failed)
	require.Len(t, gw.Calls("invite"), 2)
	require.Empty(t, gw.Calls("link"))
}

func TestCleanupOld(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	s := e.newScheduler(t, newFakeGateway(), schedulerConfig())

	_, _, err := e.queue.Enqueue(ctx, 1)
	require.NoError(t, err)
	_, err = e.queue.ReadySweep(ctx, t0.Add(5*time.Minute), 5)
	require.NoError(t, err)

	e.clock.Set(t0.Add(29 * 24 * time.Hour))
	rep, err := s.RunJob(ctx, JobCleanupOld)
	require.NoError(t, err)
	require.Zero(t, rep.Selected)

	e.clock.Set(t0.Add(31 * 24 * time.Hour))
	rep, err = s.RunJob(ctx, JobCleanupOld)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Selected)
}

func TestRunJobIsSingleFlight(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	gw := newFakeGateway()
	gw.block = make(chan struct{})
	gw.entered = make(chan struct{}, 1)
	s := e.newScheduler(t, gw, schedulerConfig())

	redeemFor(t, e, 1, 1)
	e.clock.Set(t0.Add(2 * time.Hour))

	done := make(chan error, 1)
	go func() {
		_, err := s.RunJob(ctx, JobExpireAndRelease)
		done <- err
	}()
	<-gw.entered

	state, err := s.State(JobExpireAndRelease)
	require.NoError(t, err)
	require.Equal(t, JobRunning, state)

	_, err = s.RunJob(ctx, JobExpireAndRelease)
	require.ErrorIs(t, err, ErrJobRunning)
	require.ErrorIs(t, err, ErrConflict)

	// A scheduled tick is skipped rather than queued.
	s.tick(s.jobs[JobExpireAndRelease])

	// Other jobs are independent.
	_, err = s.RunJob(ctx, JobCleanupOld)
	require.NoError(t, err)

	close(gw.block)
	require.NoError(t, <-done)

	state, err = s.State(JobExpireAndRelease)
	require.NoError(t, err)
	require.Equal(t, JobIdle, state)
	require.Len(t, gw.Calls("remove"), 1)
}

func TestRunJobRecoversPanics(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	gw := newFakeGateway()
	gw.panics = true
	s := e.newScheduler(t, gw, schedulerConfig())

	redeemFor(t, e, 1, 1)
	e.clock.Set(t0.Add(2 * time.Hour))

	rep, err := s.RunJob(ctx, JobExpireAndRelease)
	require.Error(t, err)
	require.Contains(t, rep.Error, "panicked")

	state, err := s.State(JobExpireAndRelease)
	require.NoError(t, err)
	require.Equal(t, JobIdle, state)

	gw.panics = false
	_, err = s.RunJob(ctx, JobExpireAndRelease)
	require.NoError(t, err)
}

func TestRunJobUnknown(t *testing.T) {
	e := newTestEngine(t)
	s := e.newScheduler(t, newFakeGateway(), schedulerConfig())

	_, err := s.RunJob(context.Background(), "nope")
	require.ErrorIs(t, err, ErrUnknownJob)

	_, err = s.State("nope")
	require.ErrorIs(t, err, ErrUnknownJob)
}

func TestSchedulerStartStop(t *testing.T) {
	e := newTestEngine(t)
	s := e.newScheduler(t, newFakeGateway(), schedulerConfig())

	require.NoError(t, s.Start())
	require.NoError(t, s.Start(), "second start is a no-op")

	jobs := s.Jobs()
	require.Len(t, jobs, 3)
	for _, j := range jobs {
		require.Equal(t, JobIdle, j.State)
		require.NotNil(t, j.NextRun, j.Name)
	}

	require.NoError(t, s.Stop())

	_, err := s.RunJob(context.Background(), JobCleanupOld)
	require.ErrorIs(t, err, ErrSchedulerStopped)
}

func TestSchedulerStopTimesOutAndCancels(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	gw := newFakeGateway()
	gw.block = make(chan struct{}) // never closed
	gw.entered = make(chan struct{}, 1)
	cfg := schedulerConfig()
	cfg.StopTimeout = 50 * time.Millisecond
	s := e.newScheduler(t, gw, cfg)

	redeemFor(t, e, 1, 1)
	e.clock.Set(t0.Add(2 * time.Hour))

	done := make(chan error, 1)
	go func() {
		rep, err := s.RunJob(ctx, JobExpireAndRelease)
		if err == nil && rep.Failed != 1 {
			err = errors.New("expected the cancelled removal to be counted as failed")
		}
		done <- err
	}()
	<-gw.entered

	err := s.Stop()
	require.True(t, errors.Is(err, ErrStopTimeout))

	select {
	case err := <-done:
		require.NoError(t, err, "per-item failures do not fail the run")
	case <-time.After(5 * time.Second):
		t.Fatal("job did not observe cancellation")
	}
}

func TestNewSchedulerRejectsBadCleanupSchedule(t *testing.T) {
	e := newTestEngine(t)
	cfg := schedulerConfig()
	cfg.CleanupSchedule = "not a cron line"
	_, err := NewScheduler(e.ledger, e.queue, e.settings, newFakeGateway(), nil, cfg)
	require.Error(t, err)
}
