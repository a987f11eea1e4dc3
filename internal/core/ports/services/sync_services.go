package services

import (
	"context"
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// SyncSvcFacade is the replication engine. At most one cycle runs at a time;
// a request received while syncing is coalesced into a no-op.
type SyncSvcFacade interface {
	// Sync runs one full download+upload cycle and returns the resulting
	// status. Transport failures transition to the error state and are
	// reported in the status, not returned as a hard failure.
	Sync(ctx context.Context) (domain.SyncStatus, error)

	// Status returns the current engine status without triggering a cycle.
	Status() domain.SyncStatus

	// SetOnline flips connectivity as reported by the external network
	// detector. Going offline parks the engine; coming back returns it to idle.
	SetOnline(online bool)

	// Run executes sync cycles on the given interval with exponential backoff
	// after failures, until ctx is cancelled.
	Run(ctx context.Context, interval time.Duration)
}
