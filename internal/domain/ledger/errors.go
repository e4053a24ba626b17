package ledger

import (
	"errors"
	"fmt"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// Ledger error codes. Handlers map them to HTTP statuses.
const (
	CodeInvalidLease       = "INVALID_LEASE"
	CodeTenantNotFound     = "TENANT_NOT_FOUND"
	CodePeriodNotFound     = "PERIOD_NOT_FOUND"
	CodeNonPositiveAmount  = "NON_POSITIVE_AMOUNT"
	CodeAllocationConflict = "ALLOCATION_CONFLICT"
	CodeGenerationLimit    = "GENERATION_LIMIT"
)

// Sentinels for errors.Is. Errors returned by this package carry a more
// specific message but compare equal by code.
var (
	ErrInvalidLease       = shared.NewDomainError(CodeInvalidLease, "Invalid lease")
	ErrTenantNotFound     = shared.NewDomainError(CodeTenantNotFound, "Tenant has no lease")
	ErrPeriodNotFound     = shared.NewDomainError(CodePeriodNotFound, "Rent period not found")
	ErrNonPositiveAmount  = shared.NewDomainError(CodeNonPositiveAmount, "Payment amount must be positive")
	ErrAllocationConflict = shared.NewDomainError(CodeAllocationConflict, "Payment not recorded, please retry")
	ErrGenerationLimit    = shared.NewDomainError(CodeGenerationLimit, "Too many rent periods for one generation run")
)

// InvalidLeaseError reports a bad cadence, date ordering or rent amount.
func InvalidLeaseError(format string, args ...any) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidLease, fmt.Sprintf(format, args...))
}

// TenantNotFoundError reports a tenant without any lease.
func TenantNotFoundError(tenantID fmt.Stringer) *shared.DomainError {
	return shared.NewDomainError(CodeTenantNotFound, fmt.Sprintf("no lease found for tenant %s", tenantID))
}

// PeriodNotFoundError reports a dangling rent period reference.
func PeriodNotFoundError(periodID fmt.Stringer) *shared.DomainError {
	return shared.NewDomainError(CodePeriodNotFound, fmt.Sprintf("rent period %s not found", periodID))
}

// AllocationConflictError reports a concurrent write on the period set.
func AllocationConflictError(detail string) *shared.DomainError {
	return shared.NewDomainError(CodeAllocationConflict, "payment not recorded, please retry: "+detail)
}

// GenerationLimitError reports a lease whose due dates up to target exceed
// MaxGeneratedPeriods.
func GenerationLimitError(leaseID fmt.Stringer, target fmt.Stringer) *shared.DomainError {
	return shared.NewDomainError(CodeGenerationLimit,
		fmt.Sprintf("lease %s has more than %d due dates through %s", leaseID, MaxGeneratedPeriods, target))
}

// IsRetryable reports whether the whole allocation call may be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrAllocationConflict)
}
