package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/triplebook/triplebook/internal/core/domain"
)

func entry(accountID string, display, account float64) domain.LedgerEntry {
	return domain.LedgerEntry{
		AccountID:     accountID,
		AmountDisplay: decimal.NewFromFloat(display),
		AmountAccount: decimal.NewFromFloat(account),
	}
}

func TestIsBalanced(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.LedgerEntry
		want    bool
	}{
		{
			name:    "empty group sums to zero",
			entries: nil,
			want:    true,
		},
		{
			name: "exact pair",
			entries: []domain.LedgerEntry{
				entry("a", 100, 100),
				entry("b", -100, -100),
			},
			want: true,
		},
		{
			name: "rounding residue inside tolerance",
			entries: []domain.LedgerEntry{
				entry("a", 33.34, 33.34),
				entry("b", 33.33, 33.33),
				entry("c", -66.66, -66.66),
			},
			want: true,
		},
		{
			name: "residue past tolerance",
			entries: []domain.LedgerEntry{
				entry("a", 33.35, 33.35),
				entry("b", 33.33, 33.33),
				entry("c", -66.66, -66.66),
			},
			want: false,
		},
		{
			name: "one-sided group",
			entries: []domain.LedgerEntry{
				entry("a", 50, 50),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBalanced(tt.entries))
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(decimal.NewFromFloat(90.005), decimal.NewFromInt(90)))
	assert.True(t, WithinTolerance(decimal.NewFromFloat(89.99), decimal.NewFromInt(90)))
	assert.False(t, WithinTolerance(decimal.NewFromFloat(90.02), decimal.NewFromInt(90)))
}

func TestConvertedAmount(t *testing.T) {
	got := ConvertedAmount(decimal.NewFromInt(-100), decimal.NewFromFloat(0.9))
	assert.True(t, got.Equal(decimal.NewFromInt(-90)), "got %s", got)
}

func TestAccumulateByAccount(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry("checking", 100, 100),
		entry("checking", -30, -30),
		entry("savings", -70, -63),
	}

	sums := AccumulateByAccount(entries)

	assert.Len(t, sums, 2)
	assert.True(t, sums["checking"].Equal(decimal.NewFromInt(70)), "got %s", sums["checking"])
	assert.True(t, sums["savings"].Equal(decimal.NewFromFloat(-63)), "got %s", sums["savings"])
}
