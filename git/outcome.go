package git

import "context"

// Outcome classifies the result of a merge or rebase invocation.
//
// Git signals "conflicts stopped the operation" and "the operation hard
// failed" through the same non-zero exit, so the raw call error alone
// cannot distinguish them. Classification therefore inspects repository
// state after the call and uses the error only as a tiebreaker.
type Outcome int

const (
	// OutcomeClean means the operation completed without stopping.
	OutcomeClean Outcome = iota

	// OutcomeConflictsPending means the operation stopped with
	// conflicts awaiting resolution.
	OutcomeConflictsPending

	// OutcomeHardFailure means the operation failed outright without
	// leaving a resolvable conflict state behind.
	OutcomeHardFailure
)

// String returns a readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeConflictsPending:
		return "conflicts-pending"
	case OutcomeHardFailure:
		return "hard-failure"
	default:
		return "unknown"
	}
}

// ClassifyMerge determines the outcome of a just-issued merge call.
// callErr is the raw error from Merge.
func ClassifyMerge(
	ctx context.Context, e Executor, callErr error,
) (Outcome, error) {

	if callErr == nil {
		return OutcomeClean, nil
	}

	inProgress, err := e.MergeInProgress(ctx)
	if err != nil {
		return OutcomeHardFailure, err
	}
	if inProgress {
		return OutcomeConflictsPending, nil
	}

	unmerged, err := e.UnmergedPaths(ctx)
	if err != nil {
		return OutcomeHardFailure, err
	}
	if len(unmerged) > 0 {
		return OutcomeConflictsPending, nil
	}

	return OutcomeHardFailure, callErr
}

// ClassifyRebase determines the outcome of a just-issued rebase or
// rebase-continue call. callErr is the raw error from the call.
func ClassifyRebase(
	ctx context.Context, e Executor, callErr error,
) (Outcome, error) {

	if callErr == nil {
		return OutcomeClean, nil
	}

	unmerged, err := e.UnmergedPaths(ctx)
	if err != nil {
		return OutcomeHardFailure, err
	}
	if len(unmerged) > 0 {
		return OutcomeConflictsPending, nil
	}

	inProgress, err := e.RebaseInProgress(ctx)
	if err != nil {
		return OutcomeHardFailure, err
	}
	if inProgress {
		return OutcomeConflictsPending, nil
	}

	return OutcomeHardFailure, callErr
}
