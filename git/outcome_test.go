package git_test

import (
	"context"
	"errors"
	"testing"

	"github.com/roasbeef/remerge/git"
	"github.com/stretchr/testify/require"
)

// stubState implements the state-inspection reads used by outcome
// classification. All other Executor methods panic via the embedded nil
// interface, which keeps accidental use loud.
type stubState struct {
	git.Executor

	mergeInProgress  bool
	rebaseInProgress bool
	unmerged         []string
}

func (s *stubState) MergeInProgress(context.Context) (bool, error) {
	return s.mergeInProgress, nil
}

func (s *stubState) RebaseInProgress(context.Context) (bool, error) {
	return s.rebaseInProgress, nil
}

func (s *stubState) UnmergedPaths(context.Context) ([]string, error) {
	return s.unmerged, nil
}

func TestClassifyMerge(t *testing.T) {
	ctx := context.Background()
	callErr := errors.New("exit status 1")

	// A clean call needs no inspection.
	outcome, err := git.ClassifyMerge(ctx, &stubState{}, nil)
	require.NoError(t, err)
	require.Equal(t, git.OutcomeClean, outcome)

	// MERGE_HEAD present means conflicts are resolvable.
	outcome, err = git.ClassifyMerge(
		ctx, &stubState{mergeInProgress: true}, callErr,
	)
	require.NoError(t, err)
	require.Equal(t, git.OutcomeConflictsPending, outcome)

	// Unmerged paths alone also count as resolvable.
	outcome, err = git.ClassifyMerge(
		ctx, &stubState{unmerged: []string{"a.txt"}}, callErr,
	)
	require.NoError(t, err)
	require.Equal(t, git.OutcomeConflictsPending, outcome)

	// A failed call with no conflict state is a hard failure and
	// surfaces the original error.
	outcome, err = git.ClassifyMerge(ctx, &stubState{}, callErr)
	require.Equal(t, git.OutcomeHardFailure, outcome)
	require.ErrorIs(t, err, callErr)
}

func TestClassifyRebase(t *testing.T) {
	ctx := context.Background()
	callErr := errors.New("exit status 1")

	outcome, err := git.ClassifyRebase(ctx, &stubState{}, nil)
	require.NoError(t, err)
	require.Equal(t, git.OutcomeClean, outcome)

	outcome, err = git.ClassifyRebase(
		ctx, &stubState{unmerged: []string{"a.txt"}}, callErr,
	)
	require.NoError(t, err)
	require.Equal(t, git.OutcomeConflictsPending, outcome)

	// A stopped rebase without unmerged paths is still pending.
	outcome, err = git.ClassifyRebase(
		ctx, &stubState{rebaseInProgress: true}, callErr,
	)
	require.NoError(t, err)
	require.Equal(t, git.OutcomeConflictsPending, outcome)

	outcome, err = git.ClassifyRebase(ctx, &stubState{}, callErr)
	require.Equal(t, git.OutcomeHardFailure, outcome)
	require.ErrorIs(t, err, callErr)
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "clean", git.OutcomeClean.String())
	require.Equal(
		t, "conflicts-pending", git.OutcomeConflictsPending.String(),
	)
	require.Equal(t, "hard-failure", git.OutcomeHardFailure.String())
}
