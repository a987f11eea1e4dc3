// Package memdoc provides an in-memory remote document store. It backs the
// sync engine's tests and serves as the local fallback when no remote URL is
// configured, keeping the rest of the app oblivious to connectivity.
package memdoc

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/core/ports"
)

// Store is a threadsafe in-memory RemoteStore.
type Store struct {
	mu          sync.RWMutex
	collections map[domain.Collection]map[string]ports.RemoteRecord

	// FailPuts makes every PutBatch fail, for transport-error tests.
	FailPuts bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{collections: make(map[domain.Collection]map[string]ports.RemoteRecord)}
}

var _ ports.RemoteStore = (*Store)(nil)

func (s *Store) Get(_ context.Context, collection domain.Collection, id string) (*ports.RemoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.collections[collection][id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &rec, nil
}

func (s *Store) Changes(_ context.Context, collection domain.Collection, since time.Time) ([]ports.RemoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]ports.RemoteRecord, 0)
	for _, rec := range s.collections[collection] {
		if rec.UpdatedAt.After(since) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.Before(records[j].UpdatedAt)
	})
	return records, nil
}

func (s *Store) PutBatch(_ context.Context, collection domain.Collection, records []ports.RemoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPuts {
		return apperrors.ErrSyncTransport
	}
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]ports.RemoteRecord)
	}
	for _, rec := range records {
		s.collections[collection][rec.ID] = rec
	}
	return nil
}

// Put stores a single record, bypassing batch semantics. Test helper.
func (s *Store) Put(collection domain.Collection, rec ports.RemoteRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]ports.RemoteRecord)
	}
	s.collections[collection][rec.ID] = rec
}

// Len returns the record count of one collection. Test helper.
func (s *Store) Len(collection domain.Collection) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}
