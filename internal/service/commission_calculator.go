package service

import (
	"github.com/partnerconnector/internal/constants"

	"github.com/shopspring/decimal"
)

// SplitShare is one beneficiary's computed share of a gross commission.
type SplitShare struct {
	UserID     uint
	Level      int
	Percentage decimal.Decimal
	Amount     decimal.Decimal
}

var commissionRateByLevel = map[int]decimal.Decimal{
	0: decimal.NewFromInt(constants.CommissionRateLevel0),
	1: decimal.NewFromInt(constants.CommissionRateLevel1),
	2: decimal.NewFromInt(constants.CommissionRateLevel2),
}

// CommissionRateForLevel returns the tier percentage for a hierarchy level.
// Levels without a tier get zero.
func CommissionRateForLevel(level int) decimal.Decimal {
	if rate, ok := commissionRateByLevel[level]; ok {
		return rate
	}
	return decimal.Zero
}

// ComputeSplits applies the tier table to the resolved chain, level ascending.
// Each share is gross * rate / 100 rounded half-up to 2 decimals; the shares
// are independent, so a missing upline level simply produces no entry and the
// unallocated remainder stays with the house.
func ComputeSplits(gross decimal.Decimal, chain []ChainEntry) []SplitShare {
	shares := make([]SplitShare, 0, len(chain))
	for _, entry := range chain {
		rate := CommissionRateForLevel(entry.Level)
		if rate.IsZero() {
			continue
		}
		amount := gross.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
		shares = append(shares, SplitShare{
			UserID:     entry.UserID,
			Level:      entry.Level,
			Percentage: rate,
			Amount:     amount,
		})
	}
	return shares
}
