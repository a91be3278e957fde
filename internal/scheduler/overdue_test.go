package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/tasks"
)

type signallingLister struct {
	called chan struct{}
}

func newSignallingLister() *signallingLister {
	return &signallingLister{called: make(chan struct{}, 4)}
}

func (l *signallingLister) ListOverdue(now time.Time) ([]entities.BookInstance, error) {
	l.called <- struct{}{}
	return nil, nil
}

func waitCalled(t *testing.T, l *signallingLister) {
	t.Helper()
	select {
	case <-l.called:
	case <-time.After(5 * time.Second):
		t.Fatal("overdue check did not run")
	}
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 8 * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * 1-5"))
	assert.Error(t, ValidateSchedule("every morning"))
	assert.Error(t, ValidateSchedule("0 0 8 * * *"))
}

func TestOverdueScheduler_Start(t *testing.T) {
	t.Run("disabled does not start", func(t *testing.T) {
		s := NewOverdueScheduler(config.Overdue{Enabled: false, Schedule: "0 8 * * *"}, nil, newSignallingLister())

		require.NoError(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
		assert.Nil(t, s.NextRunTime())
	})

	t.Run("invalid schedule is rejected", func(t *testing.T) {
		s := NewOverdueScheduler(config.Overdue{Enabled: true, Schedule: "nope"}, nil, newSignallingLister())

		assert.Error(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
	})

	t.Run("starts and stops", func(t *testing.T) {
		s := NewOverdueScheduler(config.Overdue{Enabled: true, Schedule: "0 8 * * *"}, nil, newSignallingLister())

		require.NoError(t, s.Start(context.Background()))
		assert.True(t, s.IsRunning())
		next := s.NextRunTime()
		require.NotNil(t, next)
		assert.Equal(t, 8, next.Hour())

		s.Stop()
		assert.False(t, s.IsRunning())
	})

	t.Run("context cancellation stops the scheduler", func(t *testing.T) {
		s := NewOverdueScheduler(config.Overdue{Enabled: true, Schedule: "0 8 * * *"}, nil, newSignallingLister())
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, s.Start(ctx))
		cancel()

		assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
	})
}

func TestOverdueScheduler_RunNow(t *testing.T) {
	t.Run("inline without queue", func(t *testing.T) {
		lister := newSignallingLister()
		s := NewOverdueScheduler(config.Overdue{Enabled: true, Schedule: "0 8 * * *"}, nil, lister)

		s.RunNow()
		waitCalled(t, lister)
	})

	t.Run("through the task queue", func(t *testing.T) {
		client, err := tasks.NewClient(filepath.Join(t.TempDir(), "catalog.db"), tasks.DefaultConfig())
		require.NoError(t, err)
		defer client.Close()

		lister := newSignallingLister()
		client.Register(tasks.NewOverdueLoansQueue(lister))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go client.Start(ctx)

		s := NewOverdueScheduler(config.Overdue{Enabled: true, Schedule: "0 8 * * *"}, client, lister)
		s.RunNow()
		waitCalled(t, lister)
	})
}
