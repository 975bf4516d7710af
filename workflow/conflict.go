package workflow

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/roasbeef/remerge/git"
	"github.com/roasbeef/remerge/output"
	"github.com/roasbeef/remerge/prompt"
)

// Mode selects the terminal action of a conflict loop.
type Mode int

const (
	// ModeMerge concludes resolution by committing the merge.
	ModeMerge Mode = iota

	// ModeRebase concludes resolution by continuing the rebase.
	ModeRebase
)

// String returns a readable name for the mode.
func (m Mode) String() string {
	if m == ModeMerge {
		return "merge"
	}

	return "rebase"
}

// loopState is the conflict loop's internal FSM state.
type loopState int

const (
	statePrompting loopState = iota
	stateChecking
	stateCompleting
	stateAborting
)

// ConflictLoop drives interactive resolution of one conflict stop.
//
// Each pass lists the paths still unstaged plus any literal conflict
// markers left in tracked files, then waits for the operator. Typing
// continue only finalizes the operation once zero unstaged paths
// remain; typing abort rolls the operation back and restores the
// original branch. Completion is judged purely by the absence of
// unstaged paths, never by the merge/rebase command's own exit signal.
type ConflictLoop struct {
	// Git is the repository under resolution.
	Git git.Executor

	// Prompt supplies operator answers.
	Prompt prompt.Interface

	// Out receives all status text.
	Out io.Writer

	// Mode selects the terminal action (commit vs rebase-continue).
	Mode Mode

	// Branch is the original branch, re-checked-out on abort so the
	// operator is never left detached or mid-operation.
	Branch string

	// CommitMessage is the message used to conclude a merge.
	CommitMessage string
}

// Run drives the FSM to a terminal state. It returns OutcomeClean when
// the operation finished, OutcomeConflictsPending when rebase-continue
// stopped on a later commit (the caller must re-enter a fresh loop),
// and *AbortError after a completed abort.
func (l *ConflictLoop) Run(ctx context.Context) (git.Outcome, error) {
	state := statePrompting

	for {
		var err error

		switch state {
		case statePrompting:
			state, err = l.promptStep(ctx)

		case stateChecking:
			state, err = l.checkStep(ctx)

		case stateCompleting:
			return l.complete(ctx)

		case stateAborting:
			return git.OutcomeHardFailure, l.abort(ctx)
		}

		if err != nil {
			return git.OutcomeHardFailure, err
		}
	}
}

// promptStep reports the current conflict state and reads one answer.
func (l *ConflictLoop) promptStep(ctx context.Context) (loopState, error) {
	unstaged, err := l.Git.UnstagedFiles(ctx)
	if err != nil {
		return statePrompting, err
	}

	output.PathList(
		l.Out, "Unstaged files:", unstaged, "(none, all staged)",
	)

	report, err := l.Git.ConflictMarkerReport(ctx)
	if err != nil {
		return statePrompting, err
	}

	output.MarkerReport(l.Out, report)

	answer, err := l.Prompt.Line(
		"Resolve the conflicts, stage the files, then type " +
			"'continue' (or 'abort' to cancel):",
	)
	if err != nil {
		// The input stream is gone; aborting is the only action
		// that leaves the repository in a usable state.
		fmt.Fprintln(l.Out, "Input closed, aborting.")

		return stateAborting, nil
	}

	switch strings.ToLower(answer) {
	case "continue":
		return stateChecking, nil
	case "abort":
		return stateAborting, nil
	default:
		fmt.Fprintln(l.Out, "Invalid option.")

		return statePrompting, nil
	}
}

// checkStep re-queries unstaged paths after a continue answer.
func (l *ConflictLoop) checkStep(ctx context.Context) (loopState, error) {
	unstaged, err := l.Git.UnstagedFiles(ctx)
	if err != nil {
		return stateChecking, err
	}

	if len(unstaged) > 0 {
		output.PathList(
			l.Out, "Cannot continue, still unstaged:", unstaged, "",
		)

		return statePrompting, nil
	}

	return stateCompleting, nil
}

// complete finalizes the underlying operation.
func (l *ConflictLoop) complete(ctx context.Context) (git.Outcome, error) {
	if l.Mode == ModeMerge {
		if err := l.Git.Commit(ctx, l.CommitMessage); err != nil {
			return git.OutcomeHardFailure, fmt.Errorf(
				"failed to conclude merge: %w", err,
			)
		}

		return git.OutcomeClean, nil
	}

	// Continuing may stop again on a later commit; classify by state
	// inspection and let the caller re-enter a fresh loop.
	callErr := l.Git.RebaseContinue(ctx)

	outcome, err := git.ClassifyRebase(ctx, l.Git, callErr)
	if outcome == git.OutcomeHardFailure {
		return outcome, fmt.Errorf("failed to continue rebase: %w", err)
	}

	return outcome, nil
}

// abort rolls the operation back and restores the original branch.
func (l *ConflictLoop) abort(ctx context.Context) error {
	var abortErr error
	if l.Mode == ModeMerge {
		abortErr = l.Git.MergeAbort(ctx)
	} else {
		abortErr = l.Git.RebaseAbort(ctx)
	}
	if abortErr != nil {
		return fmt.Errorf("failed to abort %s: %w", l.Mode, abortErr)
	}

	// Guarantee a clean, non-detached checkout on the way out.
	if err := l.Git.CheckoutBranch(ctx, l.Branch); err != nil {
		return fmt.Errorf(
			"failed to restore branch %q: %w", l.Branch, err,
		)
	}

	fmt.Fprintln(l.Out, "Aborted.")

	return &AbortError{Stage: l.Mode.String()}
}
