package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// OverdueLister lists loaned copies due back before now.
type OverdueLister interface {
	ListOverdue(now time.Time) ([]entities.BookInstance, error)
}

// OverdueLoansTask reports copies still on loan after their due date.
// AsOf defaults to the time the task runs.
type OverdueLoansTask struct {
	AsOf time.Time `json:"as_of,omitempty"`
}

func (t OverdueLoansTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "overdue_loans",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// FindOverdueLoans returns the overdue copies as of now. Nothing is modified.
func FindOverdueLoans(lister OverdueLister, now time.Time) ([]entities.BookInstance, error) {
	if lister == nil {
		return nil, fmt.Errorf("overdue lister not configured")
	}
	overdue, err := lister.ListOverdue(now)
	if err != nil {
		return nil, fmt.Errorf("list overdue loans: %w", err)
	}
	return overdue, nil
}

// OverdueLoansProcessor creates a processor function for OverdueLoansTask.
func OverdueLoansProcessor(lister OverdueLister) backlite.QueueProcessor[OverdueLoansTask] {
	return func(ctx context.Context, task OverdueLoansTask) error {
		now := task.AsOf
		if now.IsZero() {
			now = time.Now()
		}

		overdue, err := FindOverdueLoans(lister, now)
		if err != nil {
			return err
		}

		for _, bi := range overdue {
			log.Warn().
				Uint("book_instance_id", bi.ID).
				Str("title", bi.Book.Title).
				Str("imprint", bi.Imprint).
				Str("due_back", bi.DueBackISO()).
				Msg("loan overdue")
		}
		log.Info().Int("count", len(overdue)).Msg("overdue loans checked")
		return nil
	}
}

func NewOverdueLoansQueue(lister OverdueLister) backlite.Queue {
	return backlite.NewQueue(OverdueLoansProcessor(lister))
}
