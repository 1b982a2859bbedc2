package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndOnInterval(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	require.NoError(t, s.AddJob("count", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	jobCtx := make(chan context.Context, 1)

	s := NewScheduler()
	require.NoError(t, s.AddJob("ctx", time.Hour, func(ctx context.Context) error {
		jobCtx <- ctx
		return nil
	}))
	s.Start(ctx)

	got := <-jobCtx
	cancel()
	select {
	case <-got.Done():
	case <-time.After(time.Second):
		t.Fatal("job context not cancelled with parent")
	}
	s.Stop()
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	var second bool
	s := NewScheduler()
	require.NoError(t, s.AddJob("fails", time.Minute, func(ctx context.Context) error { return errors.New("boom") }))
	require.NoError(t, s.AddJob("runs", time.Minute, func(ctx context.Context) error {
		second = true
		return nil
	}))

	s.RunOnce(context.Background())
	assert.True(t, second)
}

func TestScheduler_RejectsNonPositiveInterval(t *testing.T) {
	s := NewScheduler()
	assert.Error(t, s.AddJob("bad", 0, func(ctx context.Context) error { return nil }))
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	NewScheduler().Stop()
}
