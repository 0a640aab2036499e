package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCommissionRateForLevel(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{0, "60"},
		{1, "20"},
		{2, "10"},
		{3, "0"},
		{-1, "0"},
	}
	for _, tc := range cases {
		got := CommissionRateForLevel(tc.level)
		if got.String() != tc.want {
			t.Fatalf("level %d: expected rate %s, got %s", tc.level, tc.want, got)
		}
	}
}

func TestComputeSplitsFullChain(t *testing.T) {
	chain := []ChainEntry{
		{UserID: 10, Level: 0},
		{UserID: 20, Level: 1},
		{UserID: 30, Level: 2},
	}
	shares := ComputeSplits(decimal.RequireFromString("1000.00"), chain)
	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}
	expected := []struct {
		userID uint
		amount string
	}{
		{10, "600"},
		{20, "200"},
		{30, "100"},
	}
	for i, want := range expected {
		if shares[i].UserID != want.userID {
			t.Fatalf("share %d: expected user %d, got %d", i, want.userID, shares[i].UserID)
		}
		if !shares[i].Amount.Equal(decimal.RequireFromString(want.amount)) {
			t.Fatalf("share %d: expected amount %s, got %s", i, want.amount, shares[i].Amount)
		}
	}
}

func TestComputeSplitsRoundsHalfUp(t *testing.T) {
	// 33.33 * 60% = 19.998 -> 20.00, * 20% = 6.666 -> 6.67, * 10% = 3.333 -> 3.33
	chain := []ChainEntry{
		{UserID: 1, Level: 0},
		{UserID: 2, Level: 1},
		{UserID: 3, Level: 2},
	}
	shares := ComputeSplits(decimal.RequireFromString("33.33"), chain)
	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}
	wantAmounts := []string{"20.00", "6.67", "3.33"}
	total := decimal.Zero
	for i, want := range wantAmounts {
		if !shares[i].Amount.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("share %d: expected %s, got %s", i, want, shares[i].Amount)
		}
		total = total.Add(shares[i].Amount)
	}
	if total.GreaterThan(decimal.RequireFromString("33.33")) {
		t.Fatalf("expected split total within gross, got %s", total)
	}
}

func TestComputeSplitsShortChain(t *testing.T) {
	chain := []ChainEntry{
		{UserID: 7, Level: 0},
	}
	shares := ComputeSplits(decimal.RequireFromString("250.50"), chain)
	if len(shares) != 1 {
		t.Fatalf("expected 1 share, got %d", len(shares))
	}
	if !shares[0].Amount.Equal(decimal.RequireFromString("150.30")) {
		t.Fatalf("expected 150.30, got %s", shares[0].Amount)
	}
	if !shares[0].Percentage.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected percentage 60, got %s", shares[0].Percentage)
	}
}

func TestComputeSplitsSkipsLevelsWithoutTier(t *testing.T) {
	chain := []ChainEntry{
		{UserID: 1, Level: 0},
		{UserID: 2, Level: 3},
		{UserID: 3, Level: 4},
	}
	shares := ComputeSplits(decimal.RequireFromString("100"), chain)
	if len(shares) != 1 {
		t.Fatalf("expected unknown levels skipped, got %d shares", len(shares))
	}
	if shares[0].UserID != 1 {
		t.Fatalf("expected user 1, got %d", shares[0].UserID)
	}
}
