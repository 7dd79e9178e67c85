package scheduler

import (
	"context"
	"os"
	"sync/atomic"
	"testing"

	"github.com/egerke001/halfop/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func TestSchedulerRegisterAndReplace(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	require.Empty(t, s.jobs)

	noop := func(context.Context) error { return nil }

	require.NoError(t, s.RegisterJob(JobUpdateCheck, "0 */6 * * *", noop))
	require.Len(t, s.jobs, 1)
	first := s.jobs[JobUpdateCheck]

	require.NoError(t, s.RegisterJob(JobUpdateCheck, "30 3 * * *", noop))
	require.Len(t, s.jobs, 1)
	assert.Equal(t, first, s.jobs[JobUpdateCheck], "re-registering keeps the job id")

	s.Start()
	defer func() { _ = s.Shutdown() }()

	next, err := s.NextRun(JobUpdateCheck)
	require.NoError(t, err)
	assert.Equal(t, 30, next.Minute())

	_, err = s.NextRun("missing")
	assert.Error(t, err)
}

func TestValidateCronTab(t *testing.T) {
	cases := map[string]error{
		"0 0 * * *":    nil,
		"*/15 * * * *": nil,
		"0 0 * *":      ErrInvalidCronTab,
		"0 0 * * * *":  ErrInvalidCronTab,
		"a b c d e":    ErrInvalidCronTab,
		"":             ErrInvalidCronTab,
	}
	for tab, want := range cases {
		t.Run(tab, func(t *testing.T) {
			assert.ErrorIs(t, ValidateCronTab(tab), want)
		})
	}
}

func TestDispatcherWait(t *testing.T) {
	var d Dispatcher
	var n atomic.Int32
	for i := 0; i < 10; i++ {
		d.Go(func() { n.Add(1) })
	}
	d.Wait()
	assert.EqualValues(t, 10, n.Load())
}
