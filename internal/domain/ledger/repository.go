package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// LeaseReader resolves the lease that governs a tenant
type LeaseReader interface {
	// GetLease returns the tenant's most recent lease by start date, or a
	// TenantNotFoundError when the tenant has none.
	GetLease(ctx context.Context, tenantID uuid.UUID) (*Lease, error)
}

// PeriodRepository persists rent periods
type PeriodRepository interface {
	// ListOutstandingPeriods returns the tenant's periods with status != paid
	// ordered by due date ascending, ties broken by ID.
	ListOutstandingPeriods(ctx context.Context, tenantID uuid.UUID) ([]*RentPeriod, error)

	// ListPeriodsForTenant returns every period for the tenant ordered by due date
	ListPeriodsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*RentPeriod, error)

	// ListPeriodsForLease returns every period generated for the lease
	ListPeriodsForLease(ctx context.Context, leaseID uuid.UUID) ([]*RentPeriod, error)

	// FindPeriod returns a period by ID, or a PeriodNotFoundError
	FindPeriod(ctx context.Context, id uuid.UUID) (*RentPeriod, error)

	// UpsertPeriod inserts a new period (Version 1, ignoring an existing row
	// for the same lease and due date) or updates an existing one with an
	// optimistic version check. A lost update is an AllocationConflictError.
	UpsertPeriod(ctx context.Context, period *RentPeriod) error
}

// AllocationRepository persists payment allocations
type AllocationRepository interface {
	// InsertAllocation stores a new allocation record
	InsertAllocation(ctx context.Context, alloc *PaymentAllocation) error

	// DeleteAllocationsForPayment removes every allocation of the payment
	DeleteAllocationsForPayment(ctx context.Context, paymentID uuid.UUID) error

	// ListAllocationsForPayment returns the payment's allocations
	ListAllocationsForPayment(ctx context.Context, paymentID uuid.UUID) ([]*PaymentAllocation, error)

	// ListAllocationsForPayments returns allocations for a set of payments
	ListAllocationsForPayments(ctx context.Context, paymentIDs []uuid.UUID) ([]*PaymentAllocation, error)
}

// PaymentRangeFilter selects payments by inclusive payment date range
type PaymentRangeFilter struct {
	Start      valueobject.Date
	End        valueobject.Date
	TenantID   *uuid.UUID
	PropertyID *uuid.UUID
}

// PaymentRepository persists payments
type PaymentRepository interface {
	// FindPayment returns a payment by ID, or shared.ErrNotFound
	FindPayment(ctx context.Context, id uuid.UUID) (*Payment, error)

	// SavePayment inserts a new payment or updates it with a version check
	SavePayment(ctx context.Context, payment *Payment) error

	// ListPaymentsInRange returns payments matching the filter ordered by date
	ListPaymentsInRange(ctx context.Context, filter PaymentRangeFilter) ([]*Payment, error)
}

// LedgerRepository is the persistence collaborator of the ledger core
type LedgerRepository interface {
	LeaseReader
	PeriodRepository
	AllocationRepository
	PaymentRepository
}

// LedgerUnitOfWork runs fn inside a single transaction. The repository handed
// to fn is bound to that transaction; fn returning an error rolls back every
// write made through it.
type LedgerUnitOfWork interface {
	Within(ctx context.Context, fn func(repo LedgerRepository) error) error
}
