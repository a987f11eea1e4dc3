package services

import (
	"sync"

	"github.com/shopspring/decimal"
)

// BalanceCache memoizes all-time account balances keyed by account id. It is
// ownership-scoped: created once per engine instance and shared between the
// ledger service and the sync engine, which must invalidate on every write
// affecting an account. There is deliberately no ambient module-level cache.
type BalanceCache struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal
}

// NewBalanceCache creates an empty balance cache.
func NewBalanceCache() *BalanceCache {
	return &BalanceCache{balances: make(map[string]decimal.Decimal)}
}

// Get returns the cached balance for an account, if present.
func (c *BalanceCache) Get(accountID string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.balances[accountID]
	return b, ok
}

// Set stores the balance for an account.
func (c *BalanceCache) Set(accountID string, balance decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[accountID] = balance
}

// Invalidate drops the cached balance for an account.
func (c *BalanceCache) Invalidate(accountID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.balances, accountID)
}

// InvalidateAll drops every cached balance. Used after bulk writes such as a
// sync download.
func (c *BalanceCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances = make(map[string]decimal.Decimal)
}
