package workflow

import (
	"context"
	"fmt"

	"github.com/roasbeef/remerge/git"
)

// rebase checks the real branch back out and replays it onto the base.
//
// Conflicting hunks are auto-resolved with the theirs strategy option
// instead of stopping. That is a deliberate simplification: the real
// resolution already happened in the hidden merge, so the rebase only
// has to produce a checkout-able state. The reconciliation stage
// restores the exact resolved tree if the biased rebase diverged.
func (r *Runner) rebase(ctx context.Context, runCtx RunContext) error {
	err := r.git.CheckoutBranch(ctx, runCtx.Branch.Name)
	if err != nil {
		return fmt.Errorf(
			"failed to check out %q: %w", runCtx.Branch.Name, err,
		)
	}

	fmt.Fprintf(
		r.out, "Rebasing %s onto %s.\n",
		runCtx.Branch.Name, runCtx.Base.Name,
	)

	callErr := r.git.RebaseTheirs(ctx, runCtx.Base.Name)

	outcome, err := git.ClassifyRebase(ctx, r.git, callErr)

	// Each conflicting commit needs its own pass: rebase-continue may
	// stop again further down the todo list.
	for outcome == git.OutcomeConflictsPending {
		r.state = StateRebaseConflict
		fmt.Fprintln(r.out, "Rebase conflicts detected.")

		loop := &ConflictLoop{
			Git:    r.git,
			Prompt: r.prompt,
			Out:    r.out,
			Mode:   ModeRebase,
			Branch: runCtx.Branch.Name,
		}

		outcome, err = loop.Run(ctx)
		if err != nil {
			return err
		}
	}

	if outcome == git.OutcomeHardFailure {
		return fmt.Errorf("rebase failed: %w", err)
	}

	return nil
}
