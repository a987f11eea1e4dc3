// Package ports declares the boundary interfaces toward external
// collaborators that are not repositories, such as the remote document
// store used for multi-device replication.
package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// RemoteRecord is one document in the remote keyed store. Data is the
// entity's wire shape as plain key-value JSON; UpdatedAt duplicates the
// record's updated_at for server-side filtering.
type RemoteRecord struct {
	ID        string          `json:"id"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Data      json.RawMessage `json:"data"`
}

// RemoteStore is the opaque keyed document API the sync engine replicates
// against. The store is organized as one collection per entity type and is
// scoped per user by the transport layer; auth and batching mechanics are
// the implementation's concern.
//
// PutBatch must be atomic per call: the remote store is never observed
// holding a partial batch. The sync engine relies on this to upload a
// transaction group as one indivisible unit.
type RemoteStore interface {
	// Get retrieves one record by id, or apperrors.ErrNotFound.
	Get(ctx context.Context, collection domain.Collection, id string) (*RemoteRecord, error)

	// Changes retrieves records with updated_at strictly greater than since,
	// ascending by updated_at.
	Changes(ctx context.Context, collection domain.Collection, since time.Time) ([]RemoteRecord, error)

	// PutBatch writes a batch of records atomically, overwriting by id.
	PutBatch(ctx context.Context, collection domain.Collection, records []RemoteRecord) error
}
