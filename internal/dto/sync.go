package dto

import (
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// SyncStatusResponse reports the sync engine's current state.
type SyncStatusResponse struct {
	State        domain.SyncState `json:"state"`
	LastSyncedAt *time.Time       `json:"lastSyncedAt,omitempty"`
	LastError    string           `json:"lastError,omitempty"`
	Downloaded   int              `json:"downloaded"`
	Uploaded     int              `json:"uploaded"`
	Overwritten  int              `json:"overwritten"`
}

// ToSyncStatusResponse converts a domain.SyncStatus to its DTO.
func ToSyncStatusResponse(s domain.SyncStatus) SyncStatusResponse {
	return SyncStatusResponse{
		State:        s.State,
		LastSyncedAt: s.LastSyncedAt,
		LastError:    s.LastError,
		Downloaded:   s.Downloaded,
		Uploaded:     s.Uploaded,
		Overwritten:  s.Overwritten,
	}
}
