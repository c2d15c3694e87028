package tooltip

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Outcome is how a content task ended.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeFailed   Outcome = "failed"   // error content applied
	OutcomeCanceled Outcome = "canceled" // task canceled before applying
	OutcomeStale    Outcome = "stale"    // widget hidden before applying
	OutcomeNoop     Outcome = "noop"     // static content, nothing to do
)

// Task is one content resolution started by a show event.
type Task struct {
	ID      string
	cancel  context.CancelFunc
	done    chan struct{}
	outcome Outcome
	err     error

	// mu orders Cancel against a content push in progress.
	mu       sync.Mutex
	canceled bool
}

func newTask(cancel context.CancelFunc) *Task {
	return &Task{
		ID:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// completedTask returns a task that has already finished.
func completedTask(outcome Outcome, err error) *Task {
	t := newTask(func() {})
	t.finish(outcome, err)
	return t
}

func (t *Task) finish(outcome Outcome, err error) {
	t.outcome = outcome
	t.err = err
	close(t.done)
}

// Cancel stops the task. A canceled task never updates its widget.
// Safe to call more than once and after completion.
func (t *Task) Cancel() {
	t.mu.Lock()
	t.canceled = true
	t.mu.Unlock()
	t.cancel()
}

// commit runs push unless the task was canceled or ctx has ended. A Cancel
// that arrives while push runs waits for it. A nil task only checks ctx.
func (t *Task) commit(ctx context.Context, push func()) bool {
	if t == nil {
		if ctx.Err() != nil {
			return false
		}
		push()
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.canceled || ctx.Err() != nil {
		return false
	}
	push()
	return true
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx ends, and returns the outcome
// and the resolution error, if any.
func (t *Task) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-t.done:
		return t.outcome, t.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
