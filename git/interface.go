// Package git provides an abstraction layer for git operations.
// This enables testing without actual git repositories.
package git

import "context"

// Executor abstracts git operations for testability.
//
// Read operations never mutate repository state. Ref-resolution reads
// return empty strings for unresolvable refs rather than errors, since
// "does not exist" is an expected answer during validation.
type Executor interface {
	// CurrentBranch returns the current branch name, or "" when HEAD
	// is detached.
	CurrentBranch(ctx context.Context) (string, error)

	// ShortHash resolves a ref to its abbreviated hash, or "" when the
	// ref does not resolve to a commit.
	ShortHash(ctx context.Context, ref string) (string, error)

	// DescribeCommit returns a one-line description of a commit:
	// author, relative age and subject, columns padded for alignment.
	DescribeCommit(ctx context.Context, ref string) (string, error)

	// ChangedFiles returns every path reported dirty or staged by
	// status, ignoring dirty submodules.
	ChangedFiles(ctx context.Context) ([]string, error)

	// UnstagedFiles returns paths whose worktree state is not fully
	// staged, including unmerged and untracked paths.
	UnstagedFiles(ctx context.Context) ([]string, error)

	// ConflictMarkerReport returns the raw diff --check style report of
	// literal conflict markers remaining in tracked files.
	ConflictMarkerReport(ctx context.Context) (string, error)

	// MergeInProgress reports whether MERGE_HEAD exists.
	MergeInProgress(ctx context.Context) (bool, error)

	// RebaseInProgress reports whether a rebase state directory exists.
	RebaseInProgress(ctx context.Context) (bool, error)

	// UnmergedPaths returns the paths currently in conflict state.
	UnmergedPaths(ctx context.Context) ([]string, error)

	// RevListDiff returns the commits reachable from include but not
	// from exclude.
	RevListDiff(ctx context.Context, include, exclude string) ([]string, error)

	// TreeHash returns the tree object hash of a commit.
	TreeHash(ctx context.Context, ref string) (string, error)

	// DiffCommits returns the unified diff from commit a to commit b.
	DiffCommits(ctx context.Context, a, b string) (string, error)

	// CheckoutDetach detaches HEAD at the given commit.
	CheckoutDetach(ctx context.Context, hash string) error

	// CheckoutBranch checks out a branch by name, re-attaching HEAD.
	CheckoutBranch(ctx context.Context, name string) error

	// Merge merges ref into HEAD with the given message. A non-nil
	// error covers both conflicts and hard failures; callers classify
	// the outcome via state inspection.
	Merge(ctx context.Context, ref, message string) error

	// Commit records the current index as a commit with the message.
	Commit(ctx context.Context, message string) error

	// MergeAbort aborts an in-progress merge.
	MergeAbort(ctx context.Context) error

	// RebaseTheirs rebases the current branch onto ref with the
	// theirs strategy option, auto-resolving conflicting hunks
	// instead of stopping on them. Error semantics as Merge.
	RebaseTheirs(ctx context.Context, ref string) error

	// RebaseContinue continues an in-progress rebase without opening
	// an editor. Error semantics as Merge: a later commit may conflict.
	RebaseContinue(ctx context.Context) error

	// RebaseAbort aborts an in-progress rebase.
	RebaseAbort(ctx context.Context) error

	// CommitTree creates a commit object from an explicit tree and
	// parent and returns its hash. No ref is moved.
	CommitTree(ctx context.Context, tree, parent, message string) (string, error)

	// MergeFFOnly fast-forwards the current branch to the given commit.
	MergeFFOnly(ctx context.Context, hash string) error
}

// StatusEntry is one parsed porcelain status line.
type StatusEntry struct {
	// Index is the staged (X) status column.
	Index byte

	// Worktree is the unstaged (Y) status column.
	Worktree byte

	// Path is the file path relative to repo root.
	Path string
}

// Unstaged reports whether the entry still has worktree-side state that
// is not captured in the index. Unmerged pairs (UU, AA, DU, ...) and
// untracked files count as unstaged; a fully staged resolution has a
// blank worktree column and does not.
func (e StatusEntry) Unstaged() bool {
	return e.Worktree != ' '
}

// Unmerged reports whether the entry is in conflict state.
func (e StatusEntry) Unmerged() bool {
	if e.Index == 'U' || e.Worktree == 'U' {
		return true
	}

	// Both-added and both-deleted pairs are also conflicts.
	return (e.Index == 'A' && e.Worktree == 'A') ||
		(e.Index == 'D' && e.Worktree == 'D')
}
