package domain

import "time"

// AuditFields holds the timestamps carried by every replicated entity.
// UpdatedAt mutates on every field change and is the sole input to
// last-write-wins conflict resolution during sync.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch bumps UpdatedAt to now. Every mutation path must call it so the
// record wins LWW comparison against stale replicas.
func (a *AuditFields) Touch(now time.Time) {
	a.UpdatedAt = now
}
