package workflow

import (
	"context"
	"fmt"

	"github.com/roasbeef/remerge/output"
)

// reconcile compares the post-rebase tree to the hidden merge's tree.
// When they differ it creates one corrective commit carrying the hidden
// tree, parented on the current HEAD, and fast-forwards the branch onto
// it. The fast-forward cannot fail: the new commit's parent is exactly
// the branch tip.
func (r *Runner) reconcile(
	ctx context.Context, runCtx RunContext, hidden string,
) error {

	hiddenTree, err := r.git.TreeHash(ctx, hidden)
	if err != nil {
		return err
	}

	headTree, err := r.git.TreeHash(ctx, "HEAD")
	if err != nil {
		return err
	}

	if hiddenTree == headTree {
		fmt.Fprintln(
			r.out, "Rebase reproduced the hidden merge result. "+
				"No additional commit needed.",
		)

		return nil
	}

	// Show what the corrective commit is about to apply.
	diffText, err := r.git.DiffCommits(ctx, "HEAD", hidden)
	if err == nil {
		output.ResidualSummary(r.out, diffText)
	}

	head, err := r.git.ShortHash(ctx, "HEAD")
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Rebase via merge. %s onto %s.",
		runCtx.Branch.Name, runCtx.Base.Name,
	)

	commit, err := r.git.CommitTree(ctx, hiddenTree, head, message)
	if err != nil {
		return fmt.Errorf("failed to create reconciliation commit: %w", err)
	}

	if err := r.git.MergeFFOnly(ctx, commit); err != nil {
		return fmt.Errorf("failed to fast-forward onto %s: %w", commit, err)
	}

	short, err := r.git.ShortHash(ctx, commit)
	if err != nil || short == "" {
		short = commit
	}

	fmt.Fprintf(r.out, "Created reconciliation commit %s.\n", short)

	return nil
}
