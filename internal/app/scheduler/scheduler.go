package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/tierhive/billing/pkg/config"
	"github.com/tierhive/billing/pkg/metrics"
)

// Job is one named background task with its own cron spec. Run receives a
// context carrying the configured job timeout.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler drives the background jobs on robfig/cron. Overlapping runs of
// the same job are skipped, not queued, so a slow settlement run never stacks
// up behind itself.
type Scheduler struct {
	cron       *cron.Cron
	cfg        *config.Config
	log        *zap.SugaredLogger
	jobTimeout time.Duration

	mu       sync.Mutex
	jobs     map[string]Job
	entryIDs map[string]cron.EntryID
}

func New(cfg *config.Config, log *zap.SugaredLogger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Scheduler.Timezone, err)
	}

	cronLog := &cronLogger{log: log.Named("cron")}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cronLog)),
		cron.WithLogger(cronLog),
	)

	return &Scheduler{
		cron:       c,
		cfg:        cfg,
		log:        log,
		jobTimeout: cfg.JobTimeout(),
		jobs:       make(map[string]Job),
		entryIDs:   make(map[string]cron.EntryID),
	}, nil
}

// Register adds a job under its cron spec. Duplicate names are rejected.
func (s *Scheduler) Register(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job %q already registered", job.Name)
	}

	id, err := s.cron.AddFunc(job.Spec, func() { s.runJob(job) })
	if err != nil {
		return fmt.Errorf("failed to register job %q with spec %q: %w", job.Name, job.Spec, err)
	}
	s.jobs[job.Name] = job
	s.entryIDs[job.Name] = id
	s.log.Infow("job registered", "job", job.Name, "spec", job.Spec)
	return nil
}

// Pause removes a job from the schedule without forgetting it; Resume puts it
// back under its original spec.
func (s *Scheduler) Pause(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entryIDs[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	s.cron.Remove(id)
	delete(s.entryIDs, name)
	s.log.Infow("job paused", "job", name)
	return nil
}

func (s *Scheduler) Resume(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	if _, running := s.entryIDs[name]; running {
		return nil
	}
	id, err := s.cron.AddFunc(job.Spec, func() { s.runJob(job) })
	if err != nil {
		return fmt.Errorf("failed to resume job %q: %w", name, err)
	}
	s.entryIDs[name] = id
	s.log.Infow("job resumed", "job", name)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infow("scheduler started", "timezone", s.cfg.Scheduler.Timezone, "jobs", len(s.entryIDs))
}

// Stop halts scheduling and waits for in-flight runs to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Jobs returns the names currently on the schedule.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Keys(s.entryIDs)
}

func (s *Scheduler) runJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	start := time.Now()
	result := "ok"
	defer func() {
		if r := recover(); r != nil {
			result = "panic"
			s.log.Errorw("job panicked", "job", job.Name, "panic", r)
		}
		metrics.JobRuns.WithLabelValues(job.Name, result).Inc()
		metrics.JobDurationMs.WithLabelValues(job.Name).Observe(float64(time.Since(start).Milliseconds()))
	}()

	s.log.Infow("job run started", "job", job.Name)
	if err := job.Run(ctx); err != nil {
		result = "error"
		s.log.Errorw("job run failed", "job", job.Name, "err", err)
		return
	}
	s.log.Infow("job run finished", "job", job.Name, "duration", time.Since(start))
}

// cronLogger bridges the cron library's logger onto zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l *cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "err", err)...)
}
