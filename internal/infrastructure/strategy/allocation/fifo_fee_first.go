package allocation

import (
	"context"
	"sort"

	"github.com/rentdesk/backend/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

// FIFOFeeFirstName is the registry name of the canonical rent waterfall.
const FIFOFeeFirstName = "fifo_fee_first"

// FIFOFeeFirstStrategy pays the oldest obligation first and, within an
// obligation, the late fee before rent. It stops at the first obligation
// the payment cannot clear.
type FIFOFeeFirstStrategy struct {
	strategy.BaseStrategy
}

// NewFIFOFeeFirstStrategy creates the oldest-first, fee-before-rent waterfall
func NewFIFOFeeFirstStrategy() *FIFOFeeFirstStrategy {
	return &FIFOFeeFirstStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			FIFOFeeFirstName,
			strategy.StrategyTypeAllocation,
			"Pay oldest rent period first, late fee before rent",
		),
	}
}

// Distribute walks obligations by due date (ties by period ID) and returns
// one line per obligation that received money.
func (s *FIFOFeeFirstStrategy) Distribute(
	ctx context.Context,
	amount decimal.Decimal,
	obligations []strategy.Obligation,
) (strategy.WaterfallResult, error) {
	sorted := make([]strategy.Obligation, len(obligations))
	copy(sorted, obligations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].DueDate.Compare(sorted[j].DueDate); c != 0 {
			return c < 0
		}
		return sorted[i].PeriodID.String() < sorted[j].PeriodID.String()
	})

	remaining := amount
	lines := make([]strategy.WaterfallLine, 0)
	totalAllocated := decimal.Zero

	for _, ob := range sorted {
		if !remaining.IsPositive() {
			break
		}

		fee := decimal.Max(ob.OutstandingFee, decimal.Zero)
		rent := decimal.Max(ob.OutstandingRent, decimal.Zero)
		if fee.Add(rent).IsZero() {
			continue
		}

		toFee := decimal.Min(remaining, fee)
		remaining = remaining.Sub(toFee)
		toRent := decimal.Min(remaining, rent)
		remaining = remaining.Sub(toRent)

		line := strategy.WaterfallLine{
			PeriodID:  ob.PeriodID,
			ToLateFee: toFee,
			ToRent:    toRent,
			Satisfied: toFee.Equal(fee) && toRent.Equal(rent),
		}
		lines = append(lines, line)
		totalAllocated = totalAllocated.Add(line.Amount())

		// A partially funded period absorbs the rest of the payment.
		if !line.Satisfied {
			break
		}
	}

	return strategy.WaterfallResult{
		Lines:          lines,
		TotalAllocated: totalAllocated,
		Remaining:      remaining,
	}, nil
}
