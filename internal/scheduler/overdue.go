// Package scheduler runs the periodic catalog jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// TaskAdder enqueues background tasks. *tasks.Client implements it.
type TaskAdder interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// OverdueScheduler periodically checks for loans past their due date. When a
// task queue is configured the check is enqueued there, otherwise it runs in
// the cron goroutine.
type OverdueScheduler struct {
	cfg    config.Overdue
	queue  TaskAdder
	lister tasks.OverdueLister
	log    zerolog.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewOverdueScheduler creates a scheduler. queue may be nil.
func NewOverdueScheduler(cfg config.Overdue, queue TaskAdder, lister tasks.OverdueLister) *OverdueScheduler {
	return &OverdueScheduler{
		cfg:    cfg,
		queue:  queue,
		lister: lister,
		log:    log.Logger.With().Str("component", "overdue_scheduler").Logger(),
		cron:   cron.New(cron.WithParser(cronParser)),
	}
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// Start begins the scheduler if the check is enabled.
func (s *OverdueScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.cfg.Enabled {
		s.log.Info().Msg("overdue check disabled")
		return nil
	}
	if err := ValidateSchedule(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, s.runCheck)
	if err != nil {
		return fmt.Errorf("failed to schedule overdue check: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	next := s.cron.Entry(entryID).Next
	s.log.Info().Str("schedule", s.cfg.Schedule).Time("next_run", next).Msg("overdue check scheduled")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running check to finish and stops the scheduler.
func (s *OverdueScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	s.log.Info().Msg("overdue check stopped")
}

// RunNow triggers an immediate check.
func (s *OverdueScheduler) RunNow() {
	go s.runCheck()
}

func (s *OverdueScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next check will occur, or nil when stopped.
func (s *OverdueScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *OverdueScheduler) runCheck() {
	if s.queue != nil {
		ids, err := s.queue.Add(tasks.OverdueLoansTask{}).Save()
		if err != nil {
			s.log.Error().Err(err).Msg("failed to enqueue overdue check")
			return
		}
		s.log.Debug().Strs("task_ids", ids).Msg("overdue check enqueued")
		return
	}

	if err := tasks.OverdueLoansProcessor(s.lister)(context.Background(), tasks.OverdueLoansTask{}); err != nil {
		s.log.Error().Err(err).Msg("overdue check failed")
	}
}
