package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/strategy"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AllocationRequest asks the engine to distribute one payment
type AllocationRequest struct {
	TenantID    uuid.UUID
	PaymentID   uuid.UUID
	Amount      decimal.Decimal
	PaymentDate valueobject.Date
}

// AppliedAllocation is the portion of the payment that landed on one period
type AppliedAllocation struct {
	PeriodID      uuid.UUID        `json:"period_id"`
	ToLateFee     decimal.Decimal  `json:"to_late_fee"`
	ToRent        decimal.Decimal  `json:"to_rent"`
	PeriodDueDate valueobject.Date `json:"period_due_date"`
	Status        PeriodStatus     `json:"status"`
}

// AllocationResult is the outcome of Allocate. Conservation holds:
// TotalApplied() + Remainder == request amount.
type AllocationResult struct {
	PaymentID uuid.UUID           `json:"payment_id"`
	Strategy  string              `json:"strategy"`
	Applied   []AppliedAllocation `json:"applied"`
	Remainder decimal.Decimal     `json:"remainder"`

	// Reversed counts allocations of an earlier run that were undone first.
	Reversed int `json:"reversed"`
}

// TotalApplied sums fee and rent portions across all applied lines.
func (r *AllocationResult) TotalApplied() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Applied {
		total = total.Add(a.ToLateFee).Add(a.ToRent)
	}
	return total
}

// AllocationEngine distributes payments over a tenant's outstanding periods.
// The ordering rule lives in the waterfall strategy; the engine owns loading,
// reversal, fee attachment and writing.
type AllocationEngine struct {
	uow       LedgerUnitOfWork
	waterfall strategy.WaterfallStrategy
	policy    *LateFeePolicy
}

// AllocationEngineOption configures an AllocationEngine
type AllocationEngineOption func(*AllocationEngine)

// WithLateFeePolicy sets the fee policy used while allocating
func WithLateFeePolicy(policy *LateFeePolicy) AllocationEngineOption {
	return func(e *AllocationEngine) {
		if policy != nil {
			e.policy = policy
		}
	}
}

// NewAllocationEngine creates an engine bound to a unit of work and a waterfall
func NewAllocationEngine(uow LedgerUnitOfWork, waterfall strategy.WaterfallStrategy, opts ...AllocationEngineOption) *AllocationEngine {
	e := &AllocationEngine{
		uow:       uow,
		waterfall: waterfall,
		policy:    DefaultLateFeePolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the late fee policy in use
func (e *AllocationEngine) Policy() *LateFeePolicy {
	return e.policy
}

// StrategyName names the waterfall in use, "" when none is configured
func (e *AllocationEngine) StrategyName() string {
	if e.waterfall == nil {
		return ""
	}
	return e.waterfall.Name()
}

// Allocate runs AllocateWith inside its own transaction.
func (e *AllocationEngine) Allocate(ctx context.Context, req AllocationRequest) (*AllocationResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var result *AllocationResult
	err := e.uow.Within(ctx, func(repo LedgerRepository) error {
		var err error
		result, err = e.AllocateWith(ctx, repo, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AllocateWith distributes the payment using repo, which must already be
// bound to the caller's transaction. Existing allocations of the payment are
// reversed first, so running it again for the same payment converges on the
// same ledger state.
func (e *AllocationEngine) AllocateWith(ctx context.Context, repo LedgerRepository, req AllocationRequest) (*AllocationResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if e.waterfall == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "No waterfall strategy configured")
	}

	if _, err := repo.GetLease(ctx, req.TenantID); err != nil {
		return nil, err
	}

	reversed, err := e.reverse(ctx, repo, req)
	if err != nil {
		return nil, err
	}

	periods, err := repo.ListOutstandingPeriods(ctx, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding periods: %w", err)
	}

	byID := make(map[uuid.UUID]*RentPeriod, len(periods))
	obligations := make([]strategy.Obligation, 0, len(periods))
	for _, p := range periods {
		if p.TenantID != req.TenantID {
			continue
		}
		if _, err := e.policy.ApplyLateFeeIfDue(p, req.PaymentDate); err != nil {
			return nil, err
		}
		byID[p.ID] = p
		obligations = append(obligations, strategy.Obligation{
			PeriodID:        p.ID,
			DueDate:         p.EffectiveDueDate(),
			OutstandingFee:  p.OutstandingFee(),
			OutstandingRent: p.OutstandingRent(),
		})
	}

	amount := req.Amount.Round(2)
	plan, err := e.waterfall.Distribute(ctx, amount, obligations)
	if err != nil {
		return nil, fmt.Errorf("waterfall %s failed: %w", e.waterfall.Name(), err)
	}
	if !plan.TotalAllocated.Add(plan.Remaining).Equal(amount) {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("waterfall %s did not conserve payment amount", e.waterfall.Name()))
	}

	result := &AllocationResult{
		PaymentID: req.PaymentID,
		Strategy:  e.waterfall.Name(),
		Applied:   make([]AppliedAllocation, 0, len(plan.Lines)),
		Remainder: plan.Remaining,
		Reversed:  reversed,
	}

	for _, line := range plan.Lines {
		period, ok := byID[line.PeriodID]
		if !ok {
			return nil, PeriodNotFoundError(line.PeriodID)
		}
		if err := period.ApplyAllocation(line.ToLateFee, line.ToRent); err != nil {
			return nil, err
		}
		period.RefreshStatus(req.PaymentDate, e.policy.GraceDays())
		period.IncrementVersion()
		if err := repo.UpsertPeriod(ctx, period); err != nil {
			return nil, err
		}

		alloc := NewPaymentAllocation(req.PaymentID, period.ID, line.ToLateFee, line.ToRent)
		if err := repo.InsertAllocation(ctx, alloc); err != nil {
			return nil, fmt.Errorf("failed to insert allocation: %w", err)
		}

		result.Applied = append(result.Applied, AppliedAllocation{
			PeriodID:      period.ID,
			ToLateFee:     line.ToLateFee,
			ToRent:        line.ToRent,
			PeriodDueDate: period.PeriodDueDate,
			Status:        period.Status,
		})
	}

	return result, nil
}

// reverse undoes every allocation recorded for the payment and deletes them.
// Fees left with nothing collected are released and reassessed as of the
// request's payment date.
func (e *AllocationEngine) reverse(ctx context.Context, repo LedgerRepository, req AllocationRequest) (int, error) {
	existing, err := repo.ListAllocationsForPayment(ctx, req.PaymentID)
	if err != nil {
		return 0, fmt.Errorf("failed to list allocations: %w", err)
	}
	if len(existing) == 0 {
		return 0, nil
	}

	touched := make(map[uuid.UUID]*RentPeriod)
	order := make([]uuid.UUID, 0, len(existing))
	for _, alloc := range existing {
		period, ok := touched[alloc.RentPeriodID]
		if !ok {
			period, err = repo.FindPeriod(ctx, alloc.RentPeriodID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return 0, PeriodNotFoundError(alloc.RentPeriodID)
				}
				return 0, err
			}
			touched[alloc.RentPeriodID] = period
			order = append(order, alloc.RentPeriodID)
		}
		if err := period.ReverseAllocation(alloc.ToLateFee, alloc.ToRent); err != nil {
			return 0, err
		}
	}

	for _, id := range order {
		period := touched[id]
		period.ReleaseUncollectedLateFee()
		period.RefreshStatus(req.PaymentDate, e.policy.GraceDays())
		period.IncrementVersion()
		if err := repo.UpsertPeriod(ctx, period); err != nil {
			return 0, err
		}
	}

	if err := repo.DeleteAllocationsForPayment(ctx, req.PaymentID); err != nil {
		return 0, fmt.Errorf("failed to delete allocations: %w", err)
	}
	return len(existing), nil
}

func validateRequest(req AllocationRequest) error {
	if !req.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if req.TenantID == uuid.Nil {
		return shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if req.PaymentID == uuid.Nil {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment ID cannot be empty")
	}
	if req.PaymentDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Payment date is required")
	}
	return nil
}
