package build

import (
	"fmt"
	"time"
)

// Task is one unit of build work: a staleness predicate and an action.
// Tasks are created per run, added to exactly one of the context's two
// lists, executed at most once, and discarded after the run.
type Task interface {
	// Name identifies the task in logs and run summaries.
	Name() string

	// Outdated reports whether the task's outputs are stale relative to
	// its inputs. It must not have side effects.
	Outdated(ctx *Context) (bool, error)

	// Run performs the task's action.
	Run(ctx *Context) error
}

// TaskError wraps a failure from a task's Outdated or Run. It aborts the
// current list drain; tasks executed before it remain recorded.
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s failed: %v", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// OutdatedTimestamp applies the standard staleness rule: stale when the
// output is absent or strictly older than the input. Equal timestamps count
// as fresh, so ties never rebuild.
func OutdatedTimestamp(input, output time.Time, outputExists bool) bool {
	return !outputExists || output.Before(input)
}
