package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LeaseStatus represents the lifecycle state of a lease
type LeaseStatus string

const (
	LeaseStatusPending LeaseStatus = "pending" // Signed, not yet started
	LeaseStatusActive  LeaseStatus = "active"  // Tenancy in progress
	LeaseStatusExpired LeaseStatus = "expired" // Past its end date
)

// IsValid checks if the status is a valid LeaseStatus
func (s LeaseStatus) IsValid() bool {
	switch s {
	case LeaseStatusPending, LeaseStatusActive, LeaseStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of LeaseStatus
func (s LeaseStatus) String() string {
	return string(s)
}

// Lease binds a tenant to a property at a rent amount and cadence.
// EndDate is zero for an open-ended lease.
type Lease struct {
	shared.BaseAggregateRoot
	TenantID   uuid.UUID
	PropertyID uuid.UUID
	RentAmount decimal.Decimal
	Cadence    Cadence
	StartDate  valueobject.Date
	EndDate    valueobject.Date
	Status     LeaseStatus
}

// NewLease creates a pending lease after validating its terms
func NewLease(
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	rentAmount decimal.Decimal,
	cadence Cadence,
	startDate valueobject.Date,
	endDate valueobject.Date,
) (*Lease, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}

	l := &Lease{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		PropertyID:        propertyID,
		RentAmount:        rentAmount.Round(2),
		Cadence:           cadence,
		StartDate:         startDate,
		EndDate:           endDate,
		Status:            LeaseStatusPending,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks cadence, date ordering and rent amount.
func (l *Lease) Validate() error {
	if !l.Cadence.IsValid() {
		return InvalidLeaseError("unrecognized cadence %q", l.Cadence)
	}
	if l.StartDate.IsZero() {
		return InvalidLeaseError("lease start date is required")
	}
	if !l.EndDate.IsZero() && l.StartDate.After(l.EndDate) {
		return InvalidLeaseError("lease start date %s is after end date %s", l.StartDate, l.EndDate)
	}
	if !l.RentAmount.IsPositive() {
		return InvalidLeaseError("rent amount must be positive, got %s", l.RentAmount.StringFixed(2))
	}
	return nil
}

// IsOpenEnded reports whether the lease has no end date.
func (l *Lease) IsOpenEnded() bool {
	return l.EndDate.IsZero()
}

// Covers reports whether d falls inside [StartDate, EndDate].
func (l *Lease) Covers(d valueobject.Date) bool {
	if d.Before(l.StartDate) {
		return false
	}
	return l.IsOpenEnded() || !d.After(l.EndDate)
}

// Activate moves a pending lease to active
func (l *Lease) Activate() error {
	if l.Status != LeaseStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot activate lease in %s status", l.Status))
	}
	l.Status = LeaseStatusActive
	l.IncrementVersion()
	return nil
}

// Expire moves an active lease to expired
func (l *Lease) Expire() error {
	if l.Status != LeaseStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire lease in %s status", l.Status))
	}
	l.Status = LeaseStatusExpired
	l.IncrementVersion()
	return nil
}

// RefreshStatus applies date-driven transitions as of asOf and reports
// whether the status changed. A lease that both started and ended before
// asOf goes straight to expired.
func (l *Lease) RefreshStatus(asOf valueobject.Date) bool {
	next := l.Status
	if next == LeaseStatusPending && !asOf.Before(l.StartDate) {
		next = LeaseStatusActive
	}
	if next == LeaseStatusActive && !l.IsOpenEnded() && asOf.After(l.EndDate) {
		next = LeaseStatusExpired
	}
	if next == l.Status {
		return false
	}
	l.Status = next
	l.IncrementVersion()
	return true
}

// UpdateTerms corrects rent, cadence or end date. Once periods exist only the
// end date may move, since generated periods carry the original terms.
func (l *Lease) UpdateTerms(rentAmount decimal.Decimal, cadence Cadence, endDate valueobject.Date, hasPeriods bool) error {
	rentAmount = rentAmount.Round(2)
	if hasPeriods && (!rentAmount.Equal(l.RentAmount) || cadence != l.Cadence) {
		return shared.NewDomainError("INVALID_STATE", "Rent and cadence are fixed once periods have been generated")
	}

	updated := *l
	updated.RentAmount = rentAmount
	updated.Cadence = cadence
	updated.EndDate = endDate
	if err := updated.Validate(); err != nil {
		return err
	}

	l.RentAmount = rentAmount
	l.Cadence = cadence
	l.EndDate = endDate
	l.IncrementVersion()
	return nil
}
