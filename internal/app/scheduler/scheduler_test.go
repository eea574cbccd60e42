package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tierhive/billing/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Scheduler: config.SchedulerConfig{
			Timezone:          "UTC",
			JobTimeoutSeconds: 5,
		},
	}
}

func noopJob(name, spec string) Job {
	return Job{Name: name, Spec: spec, Run: func(context.Context) error { return nil }}
}

func TestRegister_RejectsDuplicateNames(t *testing.T) {
	s, err := New(testConfig(), zap.NewNop().Sugar())
	require.NoError(t, err)

	require.NoError(t, s.Register(noopJob("pending_changes", "* * * * *")))
	err = s.Register(noopJob("pending_changes", "*/5 * * * *"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
}

func TestRegister_RejectsBadSpec(t *testing.T) {
	s, err := New(testConfig(), zap.NewNop().Sugar())
	require.NoError(t, err)

	err = s.Register(noopJob("broken", "not a cron spec"))
	require.Error(t, err)
}

func TestNew_RejectsUnknownTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Scheduler.Timezone = "Mars/Olympus_Mons"
	_, err := New(cfg, zap.NewNop().Sugar())
	require.Error(t, err)
}

func TestPauseResume(t *testing.T) {
	s, err := New(testConfig(), zap.NewNop().Sugar())
	require.NoError(t, err)

	require.NoError(t, s.Register(noopJob("monthly_payouts", "0 2 1 * *")))
	require.NoError(t, s.Register(noopJob("content_publication", "* * * * *")))
	require.Len(t, s.Jobs(), 2)

	require.NoError(t, s.Pause("monthly_payouts"))
	require.Len(t, s.Jobs(), 1)

	// pausing twice is an error, the job is off the schedule
	require.Error(t, s.Pause("monthly_payouts"))

	require.NoError(t, s.Resume("monthly_payouts"))
	require.Len(t, s.Jobs(), 2)

	// resuming a scheduled job is a no-op
	require.NoError(t, s.Resume("monthly_payouts"))
	require.Len(t, s.Jobs(), 2)

	require.Error(t, s.Resume("never_registered"))
}

func TestRunJob_RecoversPanic(t *testing.T) {
	s, err := New(testConfig(), zap.NewNop().Sugar())
	require.NoError(t, err)

	require.NotPanics(t, func() {
		s.runJob(Job{Name: "explosive", Spec: "* * * * *", Run: func(context.Context) error {
			panic("boom")
		}})
	})
}

func TestRunJob_PassesTimeoutContext(t *testing.T) {
	s, err := New(testConfig(), zap.NewNop().Sugar())
	require.NoError(t, err)

	var sawDeadline bool
	s.runJob(Job{Name: "probe", Spec: "* * * * *", Run: func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	}})
	require.True(t, sawDeadline)
}
