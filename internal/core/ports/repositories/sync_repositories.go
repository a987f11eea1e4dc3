package repositories

import (
	"context"
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// SyncRepositoryFacade persists the per-collection sync checkpoints.
type SyncRepositoryFacade interface {
	// GetCheckpoint returns the high-water updated_at mark for a collection.
	// A collection that has never synced returns the zero time, not an error.
	GetCheckpoint(ctx context.Context, collection domain.Collection) (time.Time, error)

	// SaveCheckpoint persists a collection's high-water mark.
	SaveCheckpoint(ctx context.Context, checkpoint domain.Checkpoint) error
}
