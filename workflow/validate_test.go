package workflow_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/roasbeef/remerge/git"
	"github.com/roasbeef/remerge/prompt"
	"github.com/roasbeef/remerge/testutil"
	"github.com/roasbeef/remerge/workflow"
	"github.com/stretchr/testify/require"
)

// newRunner wires a Runner with a real prompter against a real test
// repo. Each answer becomes one line of operator input.
func newRunner(
	repo *testutil.GitTestRepo, base string, answers ...string,
) (*workflow.Runner, *bytes.Buffer) {

	input := strings.Join(answers, "\n")
	if len(answers) > 0 {
		input += "\n"
	}

	var out bytes.Buffer
	runner := workflow.New(
		git.NewShellExecutor(repo.Dir),
		prompt.New(strings.NewReader(input), &out),
		&out, base,
	)

	return runner, &out
}

func TestValidateDetachedHead(t *testing.T) {
	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "alpha\n")
	repo.CommitAll("initial")
	repo.Git("checkout", "-q", "--detach")

	runner, _ := newRunner(repo, "develop")

	err := runner.Run(context.Background())
	require.ErrorContains(t, err, "detached")
	require.Equal(t, workflow.StateAborted, runner.State())
}

func TestValidateBaseNotFound(t *testing.T) {
	repo := testutil.NewDivergedRepo(t, false)

	runner, _ := newRunner(repo, "origin/nonexistent")

	err := runner.Run(context.Background())
	require.ErrorContains(t, err, "not found")
}

func TestValidateDirtyTree(t *testing.T) {
	repo := testutil.NewDivergedRepo(t, false)
	repo.WriteFile("a.txt", "alpha dirty\n")

	runner, out := newRunner(repo, "develop")

	err := runner.Run(context.Background())
	require.ErrorContains(t, err, "not clean")
	require.Contains(t, out.String(), "a.txt")

	// Nothing was touched.
	require.Equal(t, "feature", repo.CurrentBranch())
	require.Equal(t, "alpha dirty\n", repo.ReadFile("a.txt"))
	require.False(t, repo.MergeInProgress())
}

func TestValidateBranchEqualToBase(t *testing.T) {
	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "alpha\n")
	repo.CommitAll("initial")
	repo.CheckoutNew("feature")

	runner, _ := newRunner(repo, "develop")

	err := runner.Run(context.Background())
	require.ErrorContains(t, err, "equal")
}

// Re-running against an equal base never mutates, no matter how often.
func TestValidateEqualBranchIdempotent(t *testing.T) {
	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "alpha\n")
	repo.CommitAll("initial")
	repo.CheckoutNew("feature")

	before := repo.RevParse("HEAD")

	for i := 0; i < 3; i++ {
		runner, _ := newRunner(repo, "develop")
		require.ErrorContains(
			t, runner.Run(context.Background()), "equal",
		)
	}

	require.Equal(t, before, repo.RevParse("HEAD"))
	require.Equal(t, "feature", repo.CurrentBranch())
}

func TestValidateAlreadyRebased(t *testing.T) {
	// feature is strictly ahead of develop.
	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "alpha\n")
	repo.CommitAll("initial")
	repo.CheckoutNew("feature")
	repo.WriteFile("a.txt", "alpha feature\n")
	repo.CommitAll("feature change")

	runner, _ := newRunner(repo, "develop")

	err := runner.Run(context.Background())
	require.ErrorContains(t, err, "already rebased")
}

func TestValidateNoUniqueCommits(t *testing.T) {
	// feature is strictly behind develop.
	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "alpha\n")
	repo.CommitAll("initial")
	repo.CheckoutNew("feature")
	repo.Checkout("develop")
	repo.WriteFile("a.txt", "alpha develop\n")
	repo.CommitAll("develop change")
	repo.Checkout("feature")

	runner, _ := newRunner(repo, "develop")

	err := runner.Run(context.Background())
	require.ErrorContains(t, err, "fast-forward")
}

func TestValidatePreflightAbort(t *testing.T) {
	repo := testutil.NewDivergedRepo(t, false)

	runner, out := newRunner(repo, "develop", "abort")

	err := runner.Run(context.Background())
	require.ErrorIs(t, err, workflow.ErrPreflightAbort)
	require.Contains(t, out.String(), "Aborted.")

	require.Equal(t, "feature", repo.CurrentBranch())
	require.False(t, repo.MergeInProgress())
}

func TestValidateInvalidInputReasks(t *testing.T) {
	repo := testutil.NewDivergedRepo(t, false)

	runner, out := newRunner(repo, "develop", "what", "yes", "abort")

	err := runner.Run(context.Background())
	require.ErrorIs(t, err, workflow.ErrPreflightAbort)
	require.Contains(t, out.String(), "Invalid option.")
}

func TestValidateShowsRefSummaries(t *testing.T) {
	repo := testutil.NewDivergedRepo(t, false)

	runner, out := newRunner(repo, "develop", "abort")

	_ = runner.Run(context.Background())

	require.Contains(t, out.String(), "Current branch: feature")
	require.Contains(t, out.String(), "Base branch: develop")
	require.Contains(t, out.String(), "Test User")
}
