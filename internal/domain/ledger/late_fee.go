package ledger

import (
	"fmt"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Canonical flat late fees per cadence.
var (
	DefaultWeeklyLateFee   = decimal.NewFromInt(15)
	DefaultBiWeeklyLateFee = decimal.NewFromInt(25)
	DefaultMonthlyLateFee  = decimal.NewFromInt(45)
)

// LateFeePolicy decides when a period is late and which flat fee attaches.
type LateFeePolicy struct {
	fees      map[Cadence]decimal.Decimal
	graceDays int
}

// LateFeeOption configures a LateFeePolicy
type LateFeeOption func(*LateFeePolicy)

// WithFee overrides the fee for one cadence
func WithFee(cadence Cadence, fee decimal.Decimal) LateFeeOption {
	return func(p *LateFeePolicy) {
		p.fees[cadence] = fee.Round(2)
	}
}

// WithGraceDays overrides the grace window; negative values mean zero
func WithGraceDays(days int) LateFeeOption {
	return func(p *LateFeePolicy) {
		if days < 0 {
			days = 0
		}
		p.graceDays = days
	}
}

// NewLateFeePolicy creates a policy with the default table and a 5 day grace
// window, then applies opts. The fee table must stay ordered
// weekly <= bi-weekly <= monthly.
func NewLateFeePolicy(opts ...LateFeeOption) (*LateFeePolicy, error) {
	p := &LateFeePolicy{
		fees: map[Cadence]decimal.Decimal{
			CadenceWeekly:   DefaultWeeklyLateFee,
			CadenceBiWeekly: DefaultBiWeeklyLateFee,
			CadenceMonthly:  DefaultMonthlyLateFee,
		},
		graceDays: DefaultGraceDays,
	}
	for _, opt := range opts {
		opt(p)
	}

	prev := decimal.Zero
	for _, c := range AllCadences() {
		fee := p.fees[c]
		if fee.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Late fee for %s cannot be negative", c))
		}
		if fee.LessThan(prev) {
			return nil, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Late fee for %s (%s) is lower than a shorter cadence's fee (%s)", c, fee.StringFixed(2), prev.StringFixed(2)))
		}
		prev = fee
	}
	return p, nil
}

// DefaultLateFeePolicy returns the canonical table with the default grace window.
func DefaultLateFeePolicy() *LateFeePolicy {
	p, _ := NewLateFeePolicy()
	return p
}

// GraceDays returns the configured grace window
func (p *LateFeePolicy) GraceDays() int {
	return p.graceDays
}

// LateFeeAmount returns the flat fee for cadence
func (p *LateFeePolicy) LateFeeAmount(cadence Cadence) (decimal.Decimal, error) {
	fee, ok := p.fees[cadence]
	if !ok {
		return decimal.Zero, InvalidLeaseError("unrecognized cadence %q", cadence)
	}
	return fee, nil
}

// IsLate reports whether the period is past its effective due date plus grace.
func (p *LateFeePolicy) IsLate(period *RentPeriod, asOf valueobject.Date) bool {
	return IsPeriodLate(period.EffectiveDueDate(), asOf, p.graceDays)
}

// ApplyLateFeeIfDue attaches the cadence fee when the period is late as of
// asOf, not waived and carries no fee yet. A fee is attached at most once.
// It reports whether the period changed.
func (p *LateFeePolicy) ApplyLateFeeIfDue(period *RentPeriod, asOf valueobject.Date) (bool, error) {
	if period.LateFeeWaived || !period.LateFeeApplied.IsZero() {
		return false, nil
	}
	if period.IsFullyPaid() {
		return false, nil
	}
	if !p.IsLate(period, asOf) {
		return false, nil
	}
	fee, err := p.LateFeeAmount(period.Cadence)
	if err != nil {
		return false, err
	}
	if fee.IsZero() {
		return false, nil
	}
	period.LateFeeApplied = fee
	return true, nil
}

// WaiveLateFee waives the period's fee. It is refused once any part of the
// fee has been collected.
func (p *LateFeePolicy) WaiveLateFee(period *RentPeriod, asOf valueobject.Date) error {
	if period.LateFeeWaived {
		return nil
	}
	if period.LateFeePaid.IsPositive() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Late fee on period %s has already been collected", period.ID))
	}
	period.LateFeeWaived = true
	period.RefreshStatus(asOf, p.graceDays)
	period.IncrementVersion()
	return nil
}
