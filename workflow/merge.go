package workflow

import (
	"context"
	"fmt"

	"github.com/roasbeef/remerge/git"
)

// HiddenMergeMessage is the fixed message of the throwaway merge commit
// created in the detached checkout.
const HiddenMergeMessage = "Hidden orphan commit to save merge result."

// hiddenMerge detaches HEAD at the captured branch tip, merges the base
// into it and resolves conflicts interactively if needed. It returns
// the hash of the resulting commit, which is the single source of truth
// for the desired final tree. The commit stays reachable only through
// the returned hash once the detached checkout is abandoned.
func (r *Runner) hiddenMerge(
	ctx context.Context, runCtx RunContext,
) (string, error) {

	fmt.Fprintf(
		r.out, "Starting hidden merge of %s into %s.\n",
		runCtx.Base.Name, runCtx.Branch.Name,
	)

	err := r.git.CheckoutDetach(ctx, runCtx.Branch.ShortHash)
	if err != nil {
		return "", fmt.Errorf("failed to detach at branch tip: %w", err)
	}

	// The merge exiting non-zero is expected on conflicts; the real
	// outcome is read from repository state afterwards.
	callErr := r.git.Merge(ctx, runCtx.Base.Name, HiddenMergeMessage)

	outcome, err := git.ClassifyMerge(ctx, r.git, callErr)
	switch outcome {
	case git.OutcomeConflictsPending:
		r.state = StateMergeConflict
		fmt.Fprintln(r.out, "Merge conflicts detected.")

		loop := &ConflictLoop{
			Git:           r.git,
			Prompt:        r.prompt,
			Out:           r.out,
			Mode:          ModeMerge,
			Branch:        runCtx.Branch.Name,
			CommitMessage: HiddenMergeMessage,
		}

		if _, err := loop.Run(ctx); err != nil {
			return "", err
		}

	case git.OutcomeHardFailure:
		// Nothing resolvable is in progress; put the operator back
		// on the branch before surfacing the failure.
		_ = r.git.CheckoutBranch(ctx, runCtx.Branch.Name)

		return "", fmt.Errorf("hidden merge failed: %w", err)
	}

	hidden, err := r.git.ShortHash(ctx, "HEAD")
	if err != nil {
		return "", err
	}
	if hidden == "" {
		return "", fmt.Errorf("could not resolve hidden merge commit")
	}

	fmt.Fprintf(r.out, "Hidden merge result: %s\n", hidden)

	return hidden, nil
}
