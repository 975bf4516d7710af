package testutil_test

import (
	"testing"

	"github.com/roasbeef/remerge/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewGitTestRepo(t *testing.T) {
	repo := testutil.NewGitTestRepo(t)
	require.DirExists(t, repo.Dir)

	repo.WriteFile("a.txt", "alpha\n")
	repo.CommitAll("initial")

	require.Equal(t, "develop", repo.CurrentBranch())
	require.Equal(t, "alpha\n", repo.ReadFile("a.txt"))
	require.True(t, repo.FileExists("a.txt"))
	require.Equal(t, 1, repo.CommitCount("HEAD"))
	require.NotEmpty(t, repo.RevParse("HEAD"))
	require.NotEmpty(t, repo.TreeHash("HEAD"))
}

func TestDivergedRepoNonConflicting(t *testing.T) {
	repo := testutil.NewDivergedRepo(t, false)

	require.Equal(t, "feature", repo.CurrentBranch())
	require.Equal(t, 2, repo.CommitCount("feature"))
	require.Equal(t, 2, repo.CommitCount("develop"))

	// The branches diverge from a shared initial commit.
	mergeBase := repo.Git("merge-base", "feature", "develop")
	require.NotEmpty(t, mergeBase)

	// Non-conflicting: the branches touch different files, so a
	// probe merge completes cleanly.
	out, err := repo.GitMayFail("merge", "develop", "-m", "probe")
	require.NoError(t, err, out)
	require.False(t, repo.MergeInProgress())
	repo.Git("reset", "-q", "--hard", "HEAD~1")
}

func TestDivergedRepoConflicting(t *testing.T) {
	repo := testutil.NewDivergedRepo(t, true)

	// Both sides rewrote a.txt, so a merge must conflict.
	_, err := repo.GitMayFail("merge", "develop", "-m", "probe")
	require.Error(t, err)
	require.True(t, repo.MergeInProgress())

	repo.Git("merge", "--abort")
	require.False(t, repo.MergeInProgress())
}

func TestMergeAndRebaseProbes(t *testing.T) {
	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "alpha\n")
	repo.CommitAll("initial")

	require.False(t, repo.MergeInProgress())
	require.False(t, repo.RebaseInProgress())
}
