package ledger

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Payment is a single cash receipt from a tenant. PropertyID is copied from
// the tenant's lease when the payment is recorded.
type Payment struct {
	shared.BaseAggregateRoot
	TenantID        uuid.UUID
	PropertyID      uuid.UUID
	Amount          decimal.Decimal
	PaymentDate     valueobject.Date
	Notes           string
	AllocatedAmount decimal.Decimal
	UnappliedAmount decimal.Decimal
}

// NewPayment creates a payment that has not been allocated yet
func NewPayment(
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	amount decimal.Decimal,
	paymentDate valueobject.Date,
	notes string,
) (*Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if paymentDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment date is required")
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		PropertyID:        propertyID,
		Amount:            amount,
		PaymentDate:       paymentDate,
		Notes:             notes,
		AllocatedAmount:   decimal.Zero,
		UnappliedAmount:   amount,
	}, nil
}

// PaymentEdit carries the optional fields of an administrative edit.
type PaymentEdit struct {
	Amount      *decimal.Decimal
	PaymentDate *valueobject.Date
	Notes       *string
}

// Edit applies an administrative correction. It reports whether amount or
// date changed, in which case the payment must be re-allocated.
func (p *Payment) Edit(edit PaymentEdit) (bool, error) {
	reallocate := false

	if edit.Amount != nil {
		amount := edit.Amount.Round(2)
		if !amount.IsPositive() {
			return false, ErrNonPositiveAmount
		}
		if !amount.Equal(p.Amount) {
			p.Amount = amount
			reallocate = true
		}
	}
	if edit.PaymentDate != nil {
		if edit.PaymentDate.IsZero() {
			return false, shared.NewDomainError("INVALID_INPUT", "Payment date is required")
		}
		if !edit.PaymentDate.Equal(p.PaymentDate) {
			p.PaymentDate = *edit.PaymentDate
			reallocate = true
		}
	}
	if edit.Notes != nil {
		p.Notes = *edit.Notes
	}

	p.IncrementVersion()
	return reallocate, nil
}

// RecordAllocation stores the outcome of an allocation run.
func (p *Payment) RecordAllocation(result *AllocationResult) {
	p.AllocatedAmount = result.TotalApplied()
	p.UnappliedAmount = result.Remainder
	p.IncrementVersion()
}

// PaymentAllocation is the join between a payment and a rent period.
// AmountAllocated is always ToLateFee + ToRent.
type PaymentAllocation struct {
	shared.BaseEntity
	PaymentID       uuid.UUID
	RentPeriodID    uuid.UUID
	AmountAllocated decimal.Decimal
	ToLateFee       decimal.Decimal
	ToRent          decimal.Decimal
}

// NewPaymentAllocation creates an allocation record
func NewPaymentAllocation(paymentID, periodID uuid.UUID, toLateFee, toRent decimal.Decimal) *PaymentAllocation {
	return &PaymentAllocation{
		BaseEntity:      shared.NewBaseEntity(),
		PaymentID:       paymentID,
		RentPeriodID:    periodID,
		AmountAllocated: toLateFee.Add(toRent),
		ToLateFee:       toLateFee,
		ToRent:          toRent,
	}
}
