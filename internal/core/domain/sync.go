package domain

import "time"

// SyncState is the sync engine's externally visible state.
type SyncState string

const (
	SyncIdle    SyncState = "IDLE"
	SyncRunning SyncState = "SYNCING"
	SyncSynced  SyncState = "SYNCED"
	SyncError   SyncState = "ERROR"
	SyncOffline SyncState = "OFFLINE"
)

// Collection names one replicated entity type. Each collection is synced
// against its own checkpoint and its own remote document collection.
type Collection string

const (
	CollectionEntries  Collection = "ledger_entries"
	CollectionAccounts Collection = "accounts"
	CollectionBudgets  Collection = "budgets"
	CollectionRates    Collection = "exchange_rates"
	CollectionRules    Collection = "recurring_rules"
)

// Collections lists every replicated collection in sync order. Entries sync
// last so their account/budget references exist on the remote first.
var Collections = []Collection{
	CollectionAccounts,
	CollectionBudgets,
	CollectionRates,
	CollectionRules,
	CollectionEntries,
}

// Checkpoint is the high-water updated_at mark for one collection, advanced
// only after a fully successful download+upload pair.
type Checkpoint struct {
	Collection Collection `json:"collection"`
	HighWater  time.Time  `json:"highWater"`
}

// SyncStatus is the snapshot reported to callers.
type SyncStatus struct {
	State        SyncState  `json:"state"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	LastError    string     `json:"lastError,omitempty"`
	Downloaded   int        `json:"downloaded"`
	Uploaded     int        `json:"uploaded"`
	Overwritten  int        `json:"overwritten"` // local records discarded by LWW
}
