// Package testutil provides test helpers for git repository testing.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// GitTestRepo creates a temporary git repository for testing.
type GitTestRepo struct {
	t   *testing.T
	Dir string
}

// NewGitTestRepo creates a new test repo with git initialized and an
// empty "develop" branch checked out.
func NewGitTestRepo(t *testing.T) *GitTestRepo {
	t.Helper()

	dir, err := os.MkdirTemp("", "remerge-test-*")
	require.NoError(t, err)

	repo := &GitTestRepo{t: t, Dir: dir}
	t.Cleanup(repo.cleanup)

	// Initialize git repo with basic config. The explicit default
	// branch keeps behavior stable across git versions.
	repo.git("-c", "init.defaultBranch=develop", "init", "-q")
	repo.git("config", "user.email", "test@test.com")
	repo.git("config", "user.name", "Test User")

	return repo
}

func (r *GitTestRepo) cleanup() {
	os.RemoveAll(r.Dir)
}

// git runs a git command in the test repo, failing the test on error.
func (r *GitTestRepo) git(args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}

	return string(out)
}

// Git runs a git command in the test repo.
func (r *GitTestRepo) Git(args ...string) string {
	r.t.Helper()

	return r.git(args...)
}

// GitMayFail runs a git command that may fail, returning the error.
func (r *GitTestRepo) GitMayFail(args ...string) (string, error) {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()

	return string(out), err
}

// WriteFile creates or overwrites a file in the repo.
func (r *GitTestRepo) WriteFile(path, content string) {
	r.t.Helper()

	fullPath := filepath.Join(r.Dir, path)
	dir := filepath.Dir(fullPath)

	err := os.MkdirAll(dir, 0755)
	require.NoError(r.t, err)

	err = os.WriteFile(fullPath, []byte(content), 0644)
	require.NoError(r.t, err)
}

// ReadFile reads a file from the repo.
func (r *GitTestRepo) ReadFile(path string) string {
	r.t.Helper()

	data, err := os.ReadFile(filepath.Join(r.Dir, path))
	require.NoError(r.t, err)

	return string(data)
}

// FileExists checks if a file exists in the repo.
func (r *GitTestRepo) FileExists(path string) bool {
	r.t.Helper()

	_, err := os.Stat(filepath.Join(r.Dir, path))

	return err == nil
}

// CommitAll stages and commits all changes.
func (r *GitTestRepo) CommitAll(msg string) {
	r.t.Helper()

	r.git("add", "-A")
	r.git("commit", "-q", "-m", msg)
}

// StageFile stages a specific file.
func (r *GitTestRepo) StageFile(path string) {
	r.t.Helper()

	r.git("add", path)
}

// Checkout checks out an existing branch.
func (r *GitTestRepo) Checkout(branch string) {
	r.t.Helper()

	r.git("checkout", "-q", branch)
}

// CheckoutNew creates and checks out a new branch.
func (r *GitTestRepo) CheckoutNew(branch string) {
	r.t.Helper()

	r.git("checkout", "-q", "-b", branch)
}

// CurrentBranch returns the checked-out branch name, or "" if detached.
func (r *GitTestRepo) CurrentBranch() string {
	r.t.Helper()

	out, err := r.GitMayFail("symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		return ""
	}

	return strings.TrimSpace(out)
}

// RevParse resolves a ref to a full hash, failing the test on error.
func (r *GitTestRepo) RevParse(ref string) string {
	r.t.Helper()

	return strings.TrimSpace(r.git("rev-parse", ref))
}

// TreeHash returns the tree object hash of a commit.
func (r *GitTestRepo) TreeHash(ref string) string {
	r.t.Helper()

	return strings.TrimSpace(r.git("rev-parse", ref+"^{tree}"))
}

// CommitCount returns the number of commits reachable from ref.
func (r *GitTestRepo) CommitCount(ref string) int {
	r.t.Helper()

	out := strings.TrimSpace(r.git("rev-list", "--count", ref))

	n := 0
	for _, c := range out {
		n = n*10 + int(c-'0')
	}

	return n
}

// MergeInProgress reports whether MERGE_HEAD exists.
func (r *GitTestRepo) MergeInProgress() bool {
	r.t.Helper()

	_, err := r.GitMayFail("rev-parse", "-q", "--verify", "MERGE_HEAD")

	return err == nil
}

// RebaseInProgress reports whether a rebase state directory exists.
func (r *GitTestRepo) RebaseInProgress() bool {
	r.t.Helper()

	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		out, err := r.GitMayFail("rev-parse", "--git-path", dir)
		if err != nil {
			continue
		}

		path := strings.TrimSpace(out)
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.Dir, path)
		}

		if _, err := os.Stat(path); err == nil {
			return true
		}
	}

	return false
}

// NewDivergedRepo builds the standard two-branch scenario: an initial
// commit on develop with a.txt and b.txt, a feature branch adding one
// commit, and a later develop commit. When conflicting is true both
// branches rewrite the same line of a.txt; otherwise develop touches
// only b.txt. The feature branch is left checked out.
func NewDivergedRepo(t *testing.T, conflicting bool) *GitTestRepo {
	t.Helper()

	repo := NewGitTestRepo(t)

	repo.WriteFile("a.txt", "alpha\n")
	repo.WriteFile("b.txt", "bravo\n")
	repo.CommitAll("initial")

	repo.CheckoutNew("feature")
	repo.WriteFile("a.txt", "alpha feature\n")
	repo.CommitAll("feature change")

	repo.Checkout("develop")
	if conflicting {
		repo.WriteFile("a.txt", "alpha develop\n")
	} else {
		repo.WriteFile("b.txt", "bravo develop\n")
	}
	repo.CommitAll("develop change")

	repo.Checkout("feature")

	return repo
}
