package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/core/ports"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
)

// maxBackoffFactor caps the exponential backoff at interval << maxBackoffFactor.
const maxBackoffFactor = 5

// syncService replicates every collection against the remote document store
// using per-record last-write-wins and per-collection checkpoints.
//
// At most one cycle runs at a time. A Sync call arriving while a cycle is in
// flight coalesces into a no-op returning the current status.
type syncService struct {
	BaseService
	remote   ports.RemoteStore
	syncRepo portsrepo.SyncRepositoryFacade
	syncers  []collectionSyncer

	mu       sync.Mutex
	inFlight bool
	online   bool
	status   domain.SyncStatus
}

// NewSyncService wires the replication engine over the local repositories
// and the remote store. The balance cache is invalidated whenever a
// downloaded entry or account wins LWW.
func NewSyncService(
	remote ports.RemoteStore,
	syncRepo portsrepo.SyncRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	budgetRepo portsrepo.BudgetRepositoryFacade,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	recurringRepo portsrepo.RecurringRepositoryFacade,
	cache *BalanceCache,
) portssvc.SyncSvcFacade {
	// Ordered per domain.Collections: entries last so their account and
	// budget references land on the remote first.
	syncers := []collectionSyncer{
		&accountSyncer{accountRepo: accountRepo, cache: cache},
		&budgetSyncer{budgetRepo: budgetRepo},
		&rateSyncer{rateRepo: rateRepo},
		&ruleSyncer{recurringRepo: recurringRepo},
		&entrySyncer{ledgerRepo: ledgerRepo, cache: cache},
	}
	return &syncService{
		remote:   remote,
		syncRepo: syncRepo,
		syncers:  syncers,
		online:   true,
		status:   domain.SyncStatus{State: domain.SyncIdle},
	}
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

func isTransportError(err error) bool {
	return errors.Is(err, apperrors.ErrSyncTransport)
}

func (s *syncService) Status() domain.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *syncService) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.online == online {
		return
	}
	s.online = online
	if !online {
		s.status.State = domain.SyncOffline
	} else if s.status.State == domain.SyncOffline {
		s.status.State = domain.SyncIdle
	}
}

// Sync runs one download+upload cycle over every collection. Transport
// failures park the engine in the error state and are reported through the
// returned status; the error return is reserved for local store failures.
func (s *syncService) Sync(ctx context.Context) (domain.SyncStatus, error) {
	s.mu.Lock()
	if !s.online {
		status := s.status
		s.mu.Unlock()
		return status, nil
	}
	if s.inFlight {
		status := s.status
		s.mu.Unlock()
		return status, nil
	}
	s.inFlight = true
	s.status.State = domain.SyncRunning
	s.mu.Unlock()

	downloaded, uploaded, overwritten, err := s.cycle(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.status.Downloaded = downloaded
	s.status.Uploaded = uploaded
	s.status.Overwritten = overwritten
	if err != nil {
		s.status.State = domain.SyncError
		s.status.LastError = err.Error()
		if isTransportError(err) {
			return s.status, nil
		}
		return s.status, err
	}
	now := time.Now().UTC()
	s.status.State = domain.SyncSynced
	s.status.LastSyncedAt = &now
	s.status.LastError = ""
	return s.status, nil
}

// cycle syncs each collection in dependency order: download remote changes,
// apply LWW, upload local changes, then advance the checkpoint. A collection
// failure aborts the cycle; checkpoints already advanced stay advanced, so
// the next cycle resumes where this one stopped.
func (s *syncService) cycle(ctx context.Context) (downloaded, uploaded, overwritten int, err error) {
	for _, syncer := range s.syncers {
		collection := syncer.collection()
		d, u, o, err := s.syncCollection(ctx, syncer)
		downloaded += d
		uploaded += u
		overwritten += o
		if err != nil {
			s.LogWarn(ctx, "Sync cycle aborted",
				slog.String("collection", string(collection)),
				slog.String("error", err.Error()))
			return downloaded, uploaded, overwritten, fmt.Errorf("syncing %s: %w", collection, err)
		}
	}
	s.LogInfo(ctx, "Sync cycle complete",
		slog.Int("downloaded", downloaded),
		slog.Int("uploaded", uploaded),
		slog.Int("overwritten", overwritten))
	return downloaded, uploaded, overwritten, nil
}

func (s *syncService) syncCollection(ctx context.Context, syncer collectionSyncer) (downloaded, uploaded, overwritten int, err error) {
	collection := syncer.collection()

	checkpoint, err := s.syncRepo.GetCheckpoint(ctx, collection)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("loading checkpoint: %w", err)
	}
	highWater := checkpoint

	// Download first so uploads never clobber a strictly newer remote copy.
	changes, err := s.remote.Changes(ctx, collection, checkpoint)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %s", apperrors.ErrSyncTransport, err.Error())
	}
	seen := make(map[string]time.Time, len(changes))
	for _, rec := range changes {
		applied, over, err := syncer.applyRemote(ctx, rec)
		if err != nil {
			return downloaded, 0, overwritten, fmt.Errorf("applying record %s: %w", rec.ID, err)
		}
		seen[rec.ID] = rec.UpdatedAt
		if rec.UpdatedAt.After(highWater) {
			highWater = rec.UpdatedAt
		}
		if applied {
			downloaded++
		}
		if over {
			overwritten++
		}
	}

	batches, err := syncer.pendingUploads(ctx, checkpoint)
	if err != nil {
		return downloaded, 0, overwritten, fmt.Errorf("collecting local changes: %w", err)
	}
	for _, batch := range batches {
		// Records just applied from the remote come back from the local
		// change query; echoing them upstream is pointless.
		out := batch[:0:len(batch)]
		for _, rec := range batch {
			if ts, ok := seen[rec.ID]; ok && ts.Equal(rec.UpdatedAt) {
				continue
			}
			out = append(out, rec)
		}
		if len(out) == 0 {
			continue
		}
		if err := s.remote.PutBatch(ctx, collection, out); err != nil {
			return downloaded, uploaded, overwritten, fmt.Errorf("%w: %s", apperrors.ErrSyncTransport, err.Error())
		}
		uploaded += len(out)
		for _, rec := range out {
			if rec.UpdatedAt.After(highWater) {
				highWater = rec.UpdatedAt
			}
		}
	}

	if highWater.After(checkpoint) {
		err := s.syncRepo.SaveCheckpoint(ctx, domain.Checkpoint{Collection: collection, HighWater: highWater})
		if err != nil {
			return downloaded, uploaded, overwritten, fmt.Errorf("saving checkpoint: %w", err)
		}
	}
	return downloaded, uploaded, overwritten, nil
}

// Run executes sync cycles on the given interval until ctx is cancelled.
// After a failed cycle the wait doubles, capped at interval<<maxBackoffFactor,
// and resets on the next success.
func (s *syncService) Run(ctx context.Context, interval time.Duration) {
	wait := interval
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		status, err := s.Sync(ctx)
		switch {
		case err != nil || status.State == domain.SyncError:
			if wait < interval<<maxBackoffFactor {
				wait *= 2
			}
		default:
			wait = interval
		}
		timer.Reset(wait)
	}
}
