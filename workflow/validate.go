package workflow

import (
	"context"
	"fmt"

	"github.com/roasbeef/remerge/output"
	"github.com/roasbeef/remerge/prompt"
)

// validate runs every precondition check in order and stops at the
// first failure. No repository mutation happens here, so any error is
// safe to surface directly. On success it returns the captured refs.
func (r *Runner) validate(ctx context.Context) (*RunContext, error) {
	branchName, err := r.git.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	if branchName == "" {
		return nil, fmt.Errorf(
			"no current branch: HEAD is detached, " +
				"check out a branch first",
		)
	}

	baseHash, err := r.git.ShortHash(ctx, r.base)
	if err != nil {
		return nil, err
	}
	if baseHash == "" {
		return nil, fmt.Errorf("base branch %q not found", r.base)
	}

	branchHash, err := r.git.ShortHash(ctx, branchName)
	if err != nil {
		return nil, err
	}
	if branchHash == "" {
		return nil, fmt.Errorf("could not resolve branch %q", branchName)
	}

	// Show both refs so the operator can confirm what is about to be
	// rebased onto what.
	branchDesc, err := r.git.DescribeCommit(ctx, branchName)
	if err != nil {
		return nil, err
	}
	baseDesc, err := r.git.DescribeCommit(ctx, r.base)
	if err != nil {
		return nil, err
	}

	output.RefSummary(r.out, "Current branch", branchName, branchHash, branchDesc)
	output.RefSummary(r.out, "Base branch", r.base, baseHash, baseDesc)

	changed, err := r.git.ChangedFiles(ctx)
	if err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		output.PathList(r.out, "Changed files:", changed, "")

		return nil, fmt.Errorf(
			"working tree is not clean: commit or stash the "+
				"%d changed file(s) first", len(changed),
		)
	}

	if baseHash == branchHash {
		return nil, fmt.Errorf(
			"current branch %q is equal to %q, nothing to rebase",
			branchName, r.base,
		)
	}

	baseOnly, err := r.git.RevListDiff(ctx, r.base, branchName)
	if err != nil {
		return nil, err
	}
	if len(baseOnly) == 0 {
		return nil, fmt.Errorf(
			"%q has no commits missing from %q: already rebased",
			r.base, branchName,
		)
	}

	branchOnly, err := r.git.RevListDiff(ctx, branchName, r.base)
	if err != nil {
		return nil, err
	}
	if len(branchOnly) == 0 {
		return nil, fmt.Errorf(
			"%q has no commits of its own: fast-forward onto "+
				"%q instead", branchName, r.base,
		)
	}

	choice, err := prompt.Choose(
		r.prompt,
		"Continue with rebase via merge? (continue/abort)",
		"continue", "abort",
	)
	if err != nil {
		return nil, err
	}
	if choice == "abort" {
		fmt.Fprintln(r.out, "Aborted.")

		return nil, ErrPreflightAbort
	}

	return &RunContext{
		Branch: Ref{Name: branchName, ShortHash: branchHash},
		Base:   Ref{Name: r.base, ShortHash: baseHash},
	}, nil
}
