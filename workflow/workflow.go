// Package workflow implements the rebase-via-merge orchestration engine.
//
// A run moves through strictly sequential stages: precondition
// validation, a hidden merge in a detached checkout, a theirs-biased
// rebase of the real branch, and a final reconciliation that restores
// the hidden merge's exact tree when the rebase diverged from it.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/roasbeef/remerge/git"
	"github.com/roasbeef/remerge/prompt"
)

// Ref is a named ref captured at validation time. ShortHash pins the
// commit the name pointed at, since the name itself may move later.
type Ref struct {
	Name      string
	ShortHash string
}

// RunContext carries the refs captured once by the validator. It is
// immutable after construction and passed by value into each stage.
type RunContext struct {
	// Branch is the operator's feature branch at invocation time.
	Branch Ref

	// Base is the target to rebase onto.
	Base Ref
}

// RunState identifies the active stage of a run.
type RunState int

const (
	StateValidating RunState = iota
	StateMerging
	StateMergeConflict
	StateRebasing
	StateRebaseConflict
	StateReconciling
	StateDone
	StateAborted
)

// String returns a readable name for the state.
func (s RunState) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateMerging:
		return "merging"
	case StateMergeConflict:
		return "merge-conflict"
	case StateRebasing:
		return "rebasing"
	case StateRebaseConflict:
		return "rebase-conflict"
	case StateReconciling:
		return "reconciling"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// AbortError is returned when the operator aborts the run during merge
// or rebase conflict resolution. The underlying operation has been
// aborted and the original branch restored before this error surfaces.
type AbortError struct {
	// Stage names the conflict loop the abort came from.
	Stage string
}

// Error implements the error interface.
func (e *AbortError) Error() string {
	return fmt.Sprintf("aborted during %s conflict resolution", e.Stage)
}

// ExitCode distinguishes the conflict-loop abort from precondition
// failures, which exit 1.
func (e *AbortError) ExitCode() int { return 2 }

// ErrPreflightAbort is returned when the operator declines the
// pre-flight confirmation. No mutation has occurred at that point.
var ErrPreflightAbort = errors.New("aborted before any change was made")

// Runner drives a single rebase-via-merge run.
type Runner struct {
	git    git.Executor
	prompt prompt.Interface
	out    io.Writer

	// base is the requested base ref name.
	base string

	state RunState
}

// New creates a Runner targeting the given base ref.
func New(
	g git.Executor, p prompt.Interface, out io.Writer, base string,
) *Runner {

	return &Runner{
		git:    g,
		prompt: p,
		out:    out,
		base:   base,
		state:  StateValidating,
	}
}

// State returns the run's current stage.
func (r *Runner) State() RunState { return r.state }

// Run executes the full workflow. It returns nil on success (with or
// without a reconciliation commit), ErrPreflightAbort or a diagnostic
// error when a precondition fails, and *AbortError when the operator
// aborts inside a conflict loop.
func (r *Runner) Run(ctx context.Context) error {
	r.state = StateValidating

	runCtx, err := r.validate(ctx)
	if err != nil {
		r.state = StateAborted

		return err
	}

	r.state = StateMerging

	hidden, err := r.hiddenMerge(ctx, *runCtx)
	if err != nil {
		r.state = StateAborted

		return err
	}

	r.state = StateRebasing

	if err := r.rebase(ctx, *runCtx); err != nil {
		r.state = StateAborted

		return err
	}

	r.state = StateReconciling

	if err := r.reconcile(ctx, *runCtx, hidden); err != nil {
		r.state = StateAborted

		return err
	}

	r.state = StateDone

	return nil
}
