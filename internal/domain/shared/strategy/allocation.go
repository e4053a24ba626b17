package strategy

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Obligation is one outstanding rent period as seen by a waterfall.
// Both components are already net of earlier allocations.
type Obligation struct {
	PeriodID        uuid.UUID
	DueDate         valueobject.Date
	OutstandingFee  decimal.Decimal
	OutstandingRent decimal.Decimal
}

// Outstanding returns fee plus rent still owed.
func (o Obligation) Outstanding() decimal.Decimal {
	return o.OutstandingFee.Add(o.OutstandingRent)
}

// WaterfallLine is the portion of a payment directed at one obligation.
type WaterfallLine struct {
	PeriodID  uuid.UUID
	ToLateFee decimal.Decimal
	ToRent    decimal.Decimal
	// Satisfied is true when the line clears the obligation entirely.
	Satisfied bool
}

// Amount returns ToLateFee + ToRent.
func (l WaterfallLine) Amount() decimal.Decimal {
	return l.ToLateFee.Add(l.ToRent)
}

// WaterfallResult contains the lines produced for a payment.
type WaterfallResult struct {
	Lines          []WaterfallLine
	TotalAllocated decimal.Decimal
	Remaining      decimal.Decimal
}

// WaterfallStrategy distributes a single payment over outstanding
// obligations in a fixed priority order. Implementations must conserve the
// amount: TotalAllocated + Remaining == amount.
type WaterfallStrategy interface {
	Strategy
	Distribute(ctx context.Context, amount decimal.Decimal, obligations []Obligation) (WaterfallResult, error)
}
