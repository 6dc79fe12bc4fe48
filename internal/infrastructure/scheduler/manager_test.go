package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/shared/logger"
)

type countingJob struct {
	runs atomic.Int32
	done chan struct{}
}

func (j *countingJob) Run(ctx context.Context) error {
	if j.runs.Add(1) == 1 {
		close(j.done)
	}
	return nil
}

func TestSchedulerManager_RunsSyncImmediately(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewDiscard())
	require.NoError(t, err)

	job := &countingJob{done: make(chan struct{})}
	require.NoError(t, m.RegisterClosedTicketSync(job, time.Hour, time.Second))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "freshdesk-closed-tickets", m.Jobs()[0].Name())

	m.Start()
	assert.True(t, m.IsStarted())

	select {
	case <-job.done:
	case <-time.After(5 * time.Second):
		t.Fatal("sync job did not run")
	}

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestSchedulerManager_RejectsZeroInterval(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewDiscard())
	require.NoError(t, err)
	assert.Error(t, m.RegisterClosedTicketSync(&countingJob{done: make(chan struct{})}, 0, time.Second))
}

func TestSchedulerManager_StopBeforeStart(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewDiscard())
	require.NoError(t, err)
	assert.NoError(t, m.Stop())
}
