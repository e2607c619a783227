package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/gateway"
	"github.com/aussiebroadwan/lounge/pkg/idx"
	"github.com/aussiebroadwan/lounge/pkg/slogx"
	"github.com/robfig/cron/v3"
)

// Job names accepted by RunJob and State.
const (
	JobExpireAndRelease = "expire_and_release"
	JobProcessQueue     = "process_queue"
	JobCleanupOld       = "cleanup_old"
)

type JobState string

const (
	JobIdle    JobState = "idle"
	JobRunning JobState = "running"
)

const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)

const (
	expiryNotice    = "Your premium membership has expired. Redeem a new invitation token to rejoin."
	admissionNotice = "Your wait is over! Join the channel with this one-time link: %s"
)

var ErrSchedulerStopped = errors.New("scheduler: stopped")

// JobReport summarises one run of a job.
type JobReport struct {
	Job       string        `json:"job"`
	RunID     string        `json:"run_id"`
	Trigger   string        `json:"trigger"`
	Selected  int           `json:"selected"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

// JobStatus is the externally visible state of a registered job.
type JobStatus struct {
	Name     string     `json:"name"`
	State    JobState   `json:"state"`
	Schedule string     `json:"schedule"`
	NextRun  *time.Time `json:"next_run,omitempty"`
	LastRun  *JobReport `json:"last_run,omitempty"`
}

type SchedulerConfig struct {
	CleanupSchedule       string // standard 5 field cron expression
	Retention             time.Duration
	Location              *time.Location
	StopTimeout           time.Duration
	RunOnStart            bool
	PremiumChannelID      int64
	FreeChannelID         int64
	AdmissionMode         domain.AdmissionMode
	InviteLinkExpireHours int
}

type job struct {
	name     string
	schedule string
	run      func(ctx context.Context, rep *JobReport) error

	running atomic.Bool
	entry   cron.EntryID

	mu   sync.Mutex
	last *JobReport
}

// Scheduler runs the expiry, admission and cleanup sweeps on their schedules
// and on demand. Each job is single-flight: a trigger that finds the job
// already running is refused.
type Scheduler struct {
	Ledger   *LedgerService
	Queue    *QueueService
	Settings *SettingsService
	Gateway  gateway.ChannelGateway
	Logger   *slog.Logger
	Now      func() time.Time

	cfg  SchedulerConfig
	jobs map[string]*job

	baseCtx context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
	stopped bool
	wg      sync.WaitGroup
}

func NewScheduler(
	ledger *LedgerService,
	queue *QueueService,
	settings *SettingsService,
	gw gateway.ChannelGateway,
	logger *slog.Logger,
	cfg SchedulerConfig,
) (*Scheduler, error) {
	if cfg.CleanupSchedule == "" {
		cfg.CleanupSchedule = "0 3 * * *"
	}
	if _, err := cron.ParseStandard(cfg.CleanupSchedule); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", cfg.CleanupSchedule, err)
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = 30 * time.Second
	}
	if cfg.AdmissionMode == "" {
		cfg.AdmissionMode = domain.AdmissionLink
	}
	if cfg.InviteLinkExpireHours <= 0 {
		cfg.InviteLinkExpireHours = 24
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scheduler{
		Ledger:   ledger,
		Queue:    queue,
		Settings: settings,
		Gateway:  gw,
		Logger:   logger,
		Now:      time.Now,
		cfg:      cfg,
	}
	s.baseCtx, s.cancel = context.WithCancel(context.Background())

	engine := settings.Get()
	s.jobs = map[string]*job{
		JobExpireAndRelease: {
			name:     JobExpireAndRelease,
			schedule: fmt.Sprintf("@every %dm", engine.ExpirySweepIntervalMinutes),
			run:      s.expireAndRelease,
		},
		JobProcessQueue: {
			name:     JobProcessQueue,
			schedule: fmt.Sprintf("@every %dm", engine.QueueSweepIntervalMinutes),
			run:      s.processQueue,
		},
		JobCleanupOld: {
			name:     JobCleanupOld,
			schedule: cfg.CleanupSchedule,
			run:      s.cleanupOld,
		},
	}
	return s, nil
}

// Start registers every job with the cron engine and starts ticking. It is
// non-blocking.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}
	if s.started {
		return nil
	}

	logger := cronLogger{l: s.Logger.With("component", "cron")}
	c := cron.New(
		cron.WithLocation(s.cfg.Location),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger)),
	)

	for _, name := range jobNames() {
		j := s.jobs[name]
		id, err := c.AddFunc(j.schedule, func() { s.tick(j) })
		if err != nil {
			return fmt.Errorf("schedule %s: %w", j.name, err)
		}
		j.entry = id
	}

	c.Start()
	s.cron = c
	s.started = true

	s.Logger.Info("scheduler started",
		slog.String("expire_schedule", s.jobs[JobExpireAndRelease].schedule),
		slog.String("queue_schedule", s.jobs[JobProcessQueue].schedule),
		slog.String("cleanup_schedule", s.jobs[JobCleanupOld].schedule),
		slog.String("timezone", s.cfg.Location.String()),
	)

	if s.cfg.RunOnStart {
		go s.tick(s.jobs[JobExpireAndRelease])
		go s.tick(s.jobs[JobProcessQueue])
	}
	return nil
}

// Stop stops new ticks and waits up to the stop timeout for running jobs.
// On timeout the context of the running jobs is cancelled and ErrStopTimeout
// is returned.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	c := s.cron
	s.mu.Unlock()

	if c != nil {
		c.Stop()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(s.cfg.StopTimeout)
	defer timer.Stop()

	select {
	case <-done:
		s.cancel()
		s.Logger.Info("scheduler stopped")
		return nil
	case <-timer.C:
		s.cancel()
		s.Logger.Warn("scheduler stop timed out, cancelled running jobs",
			slog.Duration("timeout", s.cfg.StopTimeout),
			slog.Any("running", s.runningJobs()),
		)
		return ErrStopTimeout
	}
}

// RunJob runs name now on the caller's goroutine and returns its report.
// It fails with ErrJobRunning when the job is already in flight.
func (s *Scheduler) RunJob(ctx context.Context, name string) (JobReport, error) {
	j, ok := s.jobs[name]
	if !ok {
		return JobReport{}, ErrUnknownJob
	}
	if err := s.acquire(j); err != nil {
		return JobReport{}, err
	}

	// Stop's cancellation also reaches manual runs.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	unlink := context.AfterFunc(s.baseCtx, cancel)
	defer unlink()

	return s.execute(ctx, j, TriggerManual)
}

// State reports whether name is currently running.
func (s *Scheduler) State(name string) (JobState, error) {
	j, ok := s.jobs[name]
	if !ok {
		return "", ErrUnknownJob
	}
	if j.running.Load() {
		return JobRunning, nil
	}
	return JobIdle, nil
}

// Running reports whether the scheduler has been started and not stopped.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && !s.stopped
}

// Jobs returns the status of every job, ordered by name.
func (s *Scheduler) Jobs() []JobStatus {
	s.mu.Lock()
	c := s.cron
	s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.jobs))
	for _, name := range jobNames() {
		j := s.jobs[name]
		st := JobStatus{Name: j.name, State: JobIdle, Schedule: j.schedule}
		if j.running.Load() {
			st.State = JobRunning
		}
		if c != nil && j.entry != 0 {
			if next := c.Entry(j.entry).Next; !next.IsZero() {
				st.NextRun = &next
			}
		}
		j.mu.Lock()
		if j.last != nil {
			last := *j.last
			st.LastRun = &last
		}
		j.mu.Unlock()
		out = append(out, st)
	}
	return out
}

// tick is the cron entry point. A tick that finds the job running is skipped.
func (s *Scheduler) tick(j *job) {
	if err := s.acquire(j); err != nil {
		if errors.Is(err, ErrJobRunning) {
			s.Logger.Warn("previous run still in progress, skipping tick", slog.String("job", j.name))
		}
		return
	}

	ctx := slogx.WithContext(s.baseCtx, s.Logger)
	_, _ = s.execute(ctx, j, TriggerSchedule)
}

// acquire moves j from idle to running and registers the run with the stop
// wait group. The lock orders wg.Add before any Wait in Stop.
func (s *Scheduler) acquire(j *job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}
	if !j.running.CompareAndSwap(false, true) {
		return ErrJobRunning
	}
	s.wg.Add(1)
	return nil
}

// execute runs an acquired job and always releases it, even on panic.
func (s *Scheduler) execute(ctx context.Context, j *job, trigger string) (rep JobReport, err error) {
	defer s.wg.Done()
	defer j.running.Store(false)

	rep = JobReport{
		Job:       j.name,
		RunID:     idx.New().String(),
		Trigger:   trigger,
		StartedAt: s.now(),
	}
	ctx = slogx.WithJob(ctx, j.name, rep.RunID)
	log := slogx.FromContext(ctx)
	log.Debug("job started", slog.String("trigger", trigger))

	defer func() {
		if r := recover(); r != nil {
			log.Error("job panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("job %s panicked: %v", j.name, r)
		}

		rep.Duration = s.now().Sub(rep.StartedAt)
		if err != nil {
			rep.Error = err.Error()
			log.Error("job failed",
				slog.Duration("duration", rep.Duration),
				slog.Any("error", err),
			)
		} else {
			log.Info("job finished",
				slog.Int("selected", rep.Selected),
				slog.Int("succeeded", rep.Succeeded),
				slog.Int("failed", rep.Failed),
				slog.Duration("duration", rep.Duration),
			)
		}

		last := rep
		j.mu.Lock()
		j.last = &last
		j.mu.Unlock()
	}()

	err = j.run(ctx, &rep)
	return rep, err
}

// expireAndRelease expires lapsed memberships and removes their users from
// the premium channel. Gateway failures are logged per item; the local
// expiry stays committed.
func (s *Scheduler) expireAndRelease(ctx context.Context, rep *JobReport) error {
	log := slogx.FromContext(ctx)

	expired, err := s.Ledger.ExpireSweep(ctx, s.now())
	if err != nil {
		return err
	}
	rep.Selected = len(expired)

	for _, m := range expired {
		if err := s.Gateway.RemoveUser(ctx, s.cfg.PremiumChannelID, m.UserID); err != nil {
			rep.Failed++
			log.Error("failed to remove expired member",
				slog.String("membership_id", m.ID),
				slog.Int64("user_id", m.UserID),
				slog.Int64("channel_id", s.cfg.PremiumChannelID),
				slog.Any("error", err),
			)
			continue
		}
		rep.Succeeded++

		if err := s.Gateway.NotifyUser(ctx, m.UserID, expiryNotice); err != nil {
			log.Warn("failed to send expiry notice",
				slog.String("membership_id", m.ID),
				slog.Int64("user_id", m.UserID),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

// processQueue releases requests past their wait window and admits their
// users to the free channel.
func (s *Scheduler) processQueue(ctx context.Context, rep *JobReport) error {
	log := slogx.FromContext(ctx)

	wait := s.Settings.Get().WaitTimeMinutes
	ready, err := s.Queue.ReadySweep(ctx, s.now(), wait)
	if err != nil {
		return err
	}
	rep.Selected = len(ready)

	for _, req := range ready {
		if err := s.admit(ctx, req); err != nil {
			rep.Failed++
			log.Error("failed to admit queued user",
				slog.String("request_id", req.ID),
				slog.Int64("user_id", req.UserID),
				slog.Int64("channel_id", s.cfg.FreeChannelID),
				slog.String("mode", string(s.cfg.AdmissionMode)),
				slog.Any("error", err),
			)
			continue
		}
		rep.Succeeded++
	}
	return nil
}

func (s *Scheduler) admit(ctx context.Context, req domain.FreeAccessRequest) error {
	if s.cfg.AdmissionMode == domain.AdmissionApprove {
		return s.Gateway.InviteUser(ctx, s.cfg.FreeChannelID, req.UserID)
	}

	link, err := s.Gateway.CreateOneTimeInviteLink(ctx, s.cfg.FreeChannelID, req.UserID, s.cfg.InviteLinkExpireHours)
	if err != nil {
		return fmt.Errorf("create invite link: %w", err)
	}
	if err := s.Gateway.NotifyUser(ctx, req.UserID, fmt.Sprintf(admissionNotice, link)); err != nil {
		return fmt.Errorf("notify user: %w", err)
	}
	return nil
}

// cleanupOld deletes processed requests older than the retention window.
func (s *Scheduler) cleanupOld(ctx context.Context, rep *JobReport) error {
	cutoff := s.now().Add(-s.cfg.Retention)
	n, err := s.Queue.PurgeProcessed(ctx, cutoff)
	if err != nil {
		return err
	}
	rep.Selected = int(n)
	rep.Succeeded = int(n)
	return nil
}

func (s *Scheduler) runningJobs() []string {
	var out []string
	for _, name := range jobNames() {
		if s.jobs[name].running.Load() {
			out = append(out, name)
		}
	}
	return out
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func jobNames() []string {
	names := []string{JobExpireAndRelease, JobProcessQueue, JobCleanupOld}
	sort.Strings(names)
	return names
}

// cronLogger adapts slog to cron.Logger. Cron's chatty info lines go to debug.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
