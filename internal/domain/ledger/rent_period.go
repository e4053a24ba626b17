package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PeriodStatus represents the payment state of a rent period
type PeriodStatus string

const (
	PeriodStatusUnpaid  PeriodStatus = "unpaid"  // Nothing paid, not yet late
	PeriodStatusPartial PeriodStatus = "partial" // Some paid, not yet late
	PeriodStatusPaid    PeriodStatus = "paid"    // Rent and effective fee fully paid
	PeriodStatusOverdue PeriodStatus = "overdue" // Past due + grace and not fully paid
)

// IsValid checks if the status is a valid PeriodStatus
func (s PeriodStatus) IsValid() bool {
	switch s {
	case PeriodStatusUnpaid, PeriodStatusPartial, PeriodStatusPaid, PeriodStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PeriodStatus
func (s PeriodStatus) String() string {
	return string(s)
}

// RentPeriod is one cadence tick's obligation. RentAmount and Cadence are
// copied from the lease at generation time so later lease corrections do not
// rewrite history.
//
// Invariants: AmountPaid <= RentAmount + EffectiveLateFee(), and
// LateFeePaid <= AmountPaid.
type RentPeriod struct {
	shared.BaseAggregateRoot
	TenantID        uuid.UUID
	PropertyID      uuid.UUID
	LeaseID         uuid.UUID
	Cadence         Cadence
	PeriodDueDate   valueobject.Date
	DueDateOverride valueobject.Date
	RentAmount      decimal.Decimal
	AmountPaid      decimal.Decimal
	LateFeeApplied  decimal.Decimal
	LateFeePaid     decimal.Decimal
	LateFeeWaived   bool
	Status          PeriodStatus
}

// NewRentPeriod creates an unpaid period for lease due on dueDate
func NewRentPeriod(lease *Lease, dueDate valueobject.Date) *RentPeriod {
	return &RentPeriod{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          lease.TenantID,
		PropertyID:        lease.PropertyID,
		LeaseID:           lease.ID,
		Cadence:           lease.Cadence,
		PeriodDueDate:     dueDate,
		RentAmount:        lease.RentAmount,
		AmountPaid:        decimal.Zero,
		LateFeeApplied:    decimal.Zero,
		LateFeePaid:       decimal.Zero,
		Status:            PeriodStatusUnpaid,
	}
}

// EffectiveDueDate returns the override when set, otherwise the scheduled due date.
func (p *RentPeriod) EffectiveDueDate() valueobject.Date {
	if !p.DueDateOverride.IsZero() {
		return p.DueDateOverride
	}
	return p.PeriodDueDate
}

// EffectiveLateFee returns the attached fee, or zero when waived.
func (p *RentPeriod) EffectiveLateFee() decimal.Decimal {
	if p.LateFeeWaived {
		return decimal.Zero
	}
	return p.LateFeeApplied
}

// Obligation returns rent plus the effective late fee.
func (p *RentPeriod) Obligation() decimal.Decimal {
	return p.RentAmount.Add(p.EffectiveLateFee())
}

// RentPaid returns the portion of AmountPaid that went to rent.
func (p *RentPeriod) RentPaid() decimal.Decimal {
	return p.AmountPaid.Sub(p.LateFeePaid)
}

// OutstandingFee returns the effective late fee not yet collected.
func (p *RentPeriod) OutstandingFee() decimal.Decimal {
	return decimal.Max(p.EffectiveLateFee().Sub(p.LateFeePaid), decimal.Zero)
}

// OutstandingRent returns rent not yet collected.
func (p *RentPeriod) OutstandingRent() decimal.Decimal {
	return decimal.Max(p.RentAmount.Sub(p.RentPaid()), decimal.Zero)
}

// Outstanding returns everything still owed on the period.
func (p *RentPeriod) Outstanding() decimal.Decimal {
	return p.OutstandingFee().Add(p.OutstandingRent())
}

// IsFullyPaid reports whether the full obligation is met.
func (p *RentPeriod) IsFullyPaid() bool {
	return p.AmountPaid.GreaterThanOrEqual(p.Obligation())
}

// DeriveStatus is the single rule that maps payment state and calendar time
// to a PeriodStatus.
func DeriveStatus(amountPaid, obligation decimal.Decimal, dueDate, asOf valueobject.Date, graceDays int) PeriodStatus {
	switch {
	case amountPaid.GreaterThanOrEqual(obligation):
		return PeriodStatusPaid
	case IsPeriodLate(dueDate, asOf, graceDays):
		return PeriodStatusOverdue
	case amountPaid.IsPositive():
		return PeriodStatusPartial
	default:
		return PeriodStatusUnpaid
	}
}

// StatusAsOf derives the status without mutating the period.
func (p *RentPeriod) StatusAsOf(asOf valueobject.Date, graceDays int) PeriodStatus {
	return DeriveStatus(p.AmountPaid, p.Obligation(), p.EffectiveDueDate(), asOf, graceDays)
}

// RefreshStatus stores the derived status and reports whether it changed.
func (p *RentPeriod) RefreshStatus(asOf valueobject.Date, graceDays int) bool {
	next := p.StatusAsOf(asOf, graceDays)
	if next == p.Status {
		return false
	}
	p.Status = next
	return true
}

// ApplyAllocation adds a payment portion to the period. The caller is
// responsible for IncrementVersion once all changes are made.
func (p *RentPeriod) ApplyAllocation(toLateFee, toRent decimal.Decimal) error {
	if toLateFee.IsNegative() || toRent.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocation amounts cannot be negative")
	}
	if toLateFee.GreaterThan(p.OutstandingFee()) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Late fee portion %s exceeds outstanding fee %s", toLateFee.StringFixed(2), p.OutstandingFee().StringFixed(2)))
	}
	if toRent.GreaterThan(p.OutstandingRent()) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Rent portion %s exceeds outstanding rent %s", toRent.StringFixed(2), p.OutstandingRent().StringFixed(2)))
	}
	p.LateFeePaid = p.LateFeePaid.Add(toLateFee)
	p.AmountPaid = p.AmountPaid.Add(toLateFee).Add(toRent)
	return nil
}

// ReverseAllocation undoes an earlier ApplyAllocation.
func (p *RentPeriod) ReverseAllocation(toLateFee, toRent decimal.Decimal) error {
	if toLateFee.GreaterThan(p.LateFeePaid) || toRent.GreaterThan(p.RentPaid()) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Reversal exceeds amounts recorded on period %s", p.ID))
	}
	p.LateFeePaid = p.LateFeePaid.Sub(toLateFee)
	p.AmountPaid = p.AmountPaid.Sub(toLateFee).Sub(toRent)
	return nil
}

// ReleaseUncollectedLateFee drops an attached fee none of which has been
// collected, so it can be assessed again against a later payment date. A
// waived fee is kept. It reports whether the period changed.
func (p *RentPeriod) ReleaseUncollectedLateFee() bool {
	if p.LateFeeWaived || p.LateFeeApplied.IsZero() || !p.LateFeePaid.IsZero() {
		return false
	}
	p.LateFeeApplied = decimal.Zero
	return true
}

// OverrideDueDate sets a manual due date correction. A zero date clears it.
func (p *RentPeriod) OverrideDueDate(d valueobject.Date) {
	p.DueDateOverride = d
	p.IncrementVersion()
}
