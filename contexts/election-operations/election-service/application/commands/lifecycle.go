package commands

import (
	"context"

	application "tallyard/contexts/election-operations/election-service/application"
)

// RefreshStatuses applies the two automatic lifecycle rules in order:
//  1. upcoming + approved elections whose window has opened become active;
//  2. active elections whose window has closed become completed.
//
// Rule 2 runs after rule 1 so an election whose window has fully elapsed
// passes through active to completed in one call. The operation is
// idempotent and safe to run concurrently with vote submission; transitions
// are monotonic set-based updates. Callers must invoke it before any read
// that depends on current status, and treat a returned error as "statuses
// may be stale" rather than a reason to abort their read.
func (uc ElectionUseCase) RefreshStatuses(ctx context.Context) error {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.now()

	activated, err := uc.Elections.ActivateDue(ctx, now)
	if err != nil {
		logger.Error("status refresh activate step failed",
			"event", "election_refresh_activate_failed",
			"module", "election-operations/election-service",
			"layer", "application",
			"error", err.Error(),
		)
		return err
	}
	completed, err := uc.Elections.CompleteDue(ctx, now)
	if err != nil {
		logger.Error("status refresh complete step failed",
			"event", "election_refresh_complete_failed",
			"module", "election-operations/election-service",
			"layer", "application",
			"error", err.Error(),
		)
		return err
	}

	if activated > 0 || completed > 0 {
		logger.Info("election statuses refreshed",
			"event", "election_statuses_refreshed",
			"module", "election-operations/election-service",
			"layer", "application",
			"activated", activated,
			"completed", completed,
		)
	}
	return nil
}
