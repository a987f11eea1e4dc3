package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
)

type SQLiteSyncRepository struct {
	BaseRepository
}

// newSQLiteSyncRepository creates the checkpoint store for the sync engine.
func newSQLiteSyncRepository(db *sql.DB) portsrepo.SyncRepositoryFacade {
	return &SQLiteSyncRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.SyncRepositoryFacade = (*SQLiteSyncRepository)(nil)

// GetCheckpoint returns the zero time for a collection that has never
// synced, so the first cycle downloads the full remote history.
func (r *SQLiteSyncRepository) GetCheckpoint(ctx context.Context, collection domain.Collection) (time.Time, error) {
	var highWater time.Time
	err := r.DB.QueryRowContext(ctx,
		`SELECT high_water FROM sync_state WHERE collection = ?;`,
		string(collection),
	).Scan(&highWater)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load checkpoint for %s: %w", collection, err)
	}
	return highWater, nil
}

func (r *SQLiteSyncRepository) SaveCheckpoint(ctx context.Context, checkpoint domain.Checkpoint) error {
	query := `
		INSERT INTO sync_state (collection, high_water)
		VALUES (?, ?)
		ON CONFLICT (collection) DO UPDATE SET high_water = excluded.high_water;
	`
	_, err := r.DB.ExecContext(ctx, query, string(checkpoint.Collection), checkpoint.HighWater)
	if err != nil {
		return fmt.Errorf("failed to save checkpoint for %s: %w", checkpoint.Collection, err)
	}
	return nil
}
