package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ShellExecutor implements Executor by shelling out to git.
type ShellExecutor struct {
	// WorkDir is the working directory for git commands.
	// If empty, uses current directory.
	WorkDir string
}

// NewShellExecutor creates a new ShellExecutor.
func NewShellExecutor(workDir string) *ShellExecutor {
	return &ShellExecutor{WorkDir: workDir}
}

// run executes a git command and returns stdout.
func (e *ShellExecutor) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if e.WorkDir != "" {
		cmd.Dir = e.WorkDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf(
			"git %s failed: %w: %s",
			strings.Join(args, " "), err, stderr.String(),
		)
	}

	return stdout.String(), nil
}

// runAllowFail executes a git command whose non-zero exit is part of its
// contract (diff --check, rev-parse --verify) and returns stdout with a
// flag indicating whether the command succeeded.
func (e *ShellExecutor) runAllowFail(
	ctx context.Context, args ...string,
) (string, bool) {

	cmd := exec.CommandContext(ctx, "git", args...)
	if e.WorkDir != "" {
		cmd.Dir = e.WorkDir
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()

	return stdout.String(), err == nil
}

// CurrentBranch returns the current branch name, or "" when detached.
func (e *ShellExecutor) CurrentBranch(ctx context.Context) (string, error) {
	out, ok := e.runAllowFail(ctx, "symbolic-ref", "--short", "-q", "HEAD")
	if !ok {
		return "", nil
	}

	return strings.TrimSpace(out), nil
}

// ShortHash resolves a ref to its abbreviated commit hash, or "".
func (e *ShellExecutor) ShortHash(
	ctx context.Context, ref string,
) (string, error) {

	out, ok := e.runAllowFail(
		ctx, "rev-parse", "--short", "-q", "--verify", ref+"^{commit}",
	)
	if !ok {
		return "", nil
	}

	return strings.TrimSpace(out), nil
}

// DescribeCommit returns a padded one-line summary of a commit.
func (e *ShellExecutor) DescribeCommit(
	ctx context.Context, ref string,
) (string, error) {

	out, err := e.run(
		ctx, "log", "-1",
		"--format=%<(20,trunc)%an %<(14,trunc)%ar %s", ref,
	)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(out, "\n"), nil
}

// status returns the parsed porcelain entries, ignoring dirty submodules.
func (e *ShellExecutor) status(ctx context.Context) ([]StatusEntry, error) {
	out, err := e.run(
		ctx, "status", "--porcelain", "--ignore-submodules=dirty", "-z",
	)
	if err != nil {
		return nil, err
	}

	return ParseStatus(out), nil
}

// ParseStatus parses porcelain -z output into status entries.
// Format: XY PATH\0, with rename entries carrying an extra ORIG\0 token.
func ParseStatus(output string) []StatusEntry {
	var entries []StatusEntry

	tokens := strings.Split(output, "\x00")
	for i := 0; i < len(tokens); i++ {
		entry := tokens[i]
		if len(entry) < 4 {
			continue
		}

		index := entry[0]
		worktree := entry[1]

		entries = append(entries, StatusEntry{
			Index:    index,
			Worktree: worktree,
			Path:     entry[3:],
		})

		// Renames carry the original path as the next token.
		if index == 'R' || index == 'C' || worktree == 'R' || worktree == 'C' {
			i++
		}
	}

	return entries
}

// ChangedFiles returns every dirty or staged path.
func (e *ShellExecutor) ChangedFiles(ctx context.Context) ([]string, error) {
	entries, err := e.status(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}

	return paths, nil
}

// UnstagedFiles returns paths not yet fully staged.
func (e *ShellExecutor) UnstagedFiles(ctx context.Context) ([]string, error) {
	entries, err := e.status(ctx)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.Unstaged() {
			paths = append(paths, entry.Path)
		}
	}

	return paths, nil
}

// ConflictMarkerReport returns git's report of literal conflict markers
// left in tracked files. diff --check exits non-zero when it finds any,
// so its exit status is ignored.
func (e *ShellExecutor) ConflictMarkerReport(
	ctx context.Context,
) (string, error) {

	out, _ := e.runAllowFail(ctx, "diff", "--check")

	return out, nil
}

// MergeInProgress reports whether MERGE_HEAD exists.
func (e *ShellExecutor) MergeInProgress(ctx context.Context) (bool, error) {
	_, ok := e.runAllowFail(ctx, "rev-parse", "-q", "--verify", "MERGE_HEAD")

	return ok, nil
}

// RebaseInProgress reports whether a rebase state directory exists.
func (e *ShellExecutor) RebaseInProgress(ctx context.Context) (bool, error) {
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		out, ok := e.runAllowFail(ctx, "rev-parse", "--git-path", dir)
		if !ok {
			continue
		}

		path := strings.TrimSpace(out)
		if !filepath.IsAbs(path) && e.WorkDir != "" {
			path = filepath.Join(e.WorkDir, path)
		}

		if _, err := os.Stat(path); err == nil {
			return true, nil
		}
	}

	return false, nil
}

// UnmergedPaths returns the paths currently in conflict state.
func (e *ShellExecutor) UnmergedPaths(ctx context.Context) ([]string, error) {
	out, err := e.run(
		ctx, "diff", "--name-only", "--diff-filter=U", "-z",
	)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, path := range strings.Split(out, "\x00") {
		if path != "" {
			paths = append(paths, path)
		}
	}

	return paths, nil
}

// RevListDiff returns commits reachable from include but not exclude.
func (e *ShellExecutor) RevListDiff(
	ctx context.Context, include, exclude string,
) ([]string, error) {

	out, err := e.run(ctx, "rev-list", include, "^"+exclude)
	if err != nil {
		return nil, err
	}

	var commits []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			commits = append(commits, line)
		}
	}

	return commits, nil
}

// TreeHash returns the tree object hash of a commit.
func (e *ShellExecutor) TreeHash(
	ctx context.Context, ref string,
) (string, error) {

	out, err := e.run(ctx, "rev-parse", ref+"^{tree}")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// DiffCommits returns the unified diff from commit a to commit b.
func (e *ShellExecutor) DiffCommits(
	ctx context.Context, a, b string,
) (string, error) {

	return e.run(ctx, "diff", "--no-color", a, b)
}

// CheckoutDetach detaches HEAD at the given commit.
func (e *ShellExecutor) CheckoutDetach(ctx context.Context, hash string) error {
	_, err := e.run(ctx, "checkout", "-q", "--detach", hash)

	return err
}

// CheckoutBranch checks out a branch by name.
func (e *ShellExecutor) CheckoutBranch(ctx context.Context, name string) error {
	_, err := e.run(ctx, "checkout", "-q", name)

	return err
}

// Merge merges ref into HEAD with the given message.
func (e *ShellExecutor) Merge(ctx context.Context, ref, message string) error {
	_, err := e.run(ctx, "merge", ref, "-m", message)

	return err
}

// Commit records the current index as a commit.
func (e *ShellExecutor) Commit(ctx context.Context, message string) error {
	_, err := e.run(ctx, "commit", "-m", message)

	return err
}

// MergeAbort aborts an in-progress merge.
func (e *ShellExecutor) MergeAbort(ctx context.Context) error {
	_, err := e.run(ctx, "merge", "--abort")

	return err
}

// RebaseTheirs rebases the current branch onto ref, auto-resolving
// conflicting hunks toward ref's side.
func (e *ShellExecutor) RebaseTheirs(ctx context.Context, ref string) error {
	_, err := e.run(ctx, "rebase", "-X", "theirs", ref)

	return err
}

// RebaseContinue continues an in-progress rebase. core.editor is forced
// to true so git never opens an editor for the replayed message.
func (e *ShellExecutor) RebaseContinue(ctx context.Context) error {
	_, err := e.run(ctx, "-c", "core.editor=true", "rebase", "--continue")

	return err
}

// RebaseAbort aborts an in-progress rebase.
func (e *ShellExecutor) RebaseAbort(ctx context.Context) error {
	_, err := e.run(ctx, "rebase", "--abort")

	return err
}

// CommitTree creates a commit object from an explicit tree and parent.
func (e *ShellExecutor) CommitTree(
	ctx context.Context, tree, parent, message string,
) (string, error) {

	out, err := e.run(ctx, "commit-tree", tree, "-p", parent, "-m", message)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// MergeFFOnly fast-forwards the current branch to the given commit.
func (e *ShellExecutor) MergeFFOnly(ctx context.Context, hash string) error {
	_, err := e.run(ctx, "merge", "--ff-only", hash)

	return err
}

// Compile-time check that ShellExecutor implements Executor.
var _ Executor = (*ShellExecutor)(nil)
