package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LedgerReader is the read-only view the aggregator needs
type LedgerReader interface {
	LeaseReader
	ListPeriodsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*RentPeriod, error)
	ListPaymentsInRange(ctx context.Context, filter PaymentRangeFilter) ([]*Payment, error)
	ListAllocationsForPayments(ctx context.Context, paymentIDs []uuid.UUID) ([]*PaymentAllocation, error)
}

// TenantArrears is the owed-amount rollup for one tenant
type TenantArrears struct {
	TenantID      uuid.UUID        `json:"tenant_id"`
	AsOf          valueobject.Date `json:"as_of"`
	TotalOwed     decimal.Decimal  `json:"total_owed"`
	TotalLateFees decimal.Decimal  `json:"total_late_fees"`
	MissedPeriods int              `json:"missed_periods"`
	OpenPeriods   int              `json:"open_periods"`
}

// CollectionQuery selects payments for a collections rollup
type CollectionQuery struct {
	Start      valueobject.Date
	End        valueobject.Date
	TenantID   *uuid.UUID
	PropertyID *uuid.UUID
}

// BreakdownEntry is one tenant's or property's share of collections
type BreakdownEntry struct {
	ID             uuid.UUID       `json:"id"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	PaymentCount   int             `json:"payment_count"`
}

// CollectionSummary is the collections rollup over a date range.
// TotalCollected is cash received: allocated amounts plus unapplied credit.
type CollectionSummary struct {
	Start          valueobject.Date `json:"start"`
	End            valueobject.Date `json:"end"`
	TotalCollected decimal.Decimal  `json:"total_collected"`
	TotalAllocated decimal.Decimal  `json:"total_allocated"`
	TotalUnapplied decimal.Decimal  `json:"total_unapplied"`
	PaymentCount   int              `json:"payment_count"`
	ByTenant       []BreakdownEntry `json:"by_tenant,omitempty"`
	ByProperty     []BreakdownEntry `json:"by_property,omitempty"`
}

// ArrearsAggregator computes read-side rollups. It evaluates late fees and
// statuses in memory as of the report date and never writes.
type ArrearsAggregator struct {
	reader LedgerReader
	policy *LateFeePolicy
}

// NewArrearsAggregator creates an aggregator; a nil policy means the default table
func NewArrearsAggregator(reader LedgerReader, policy *LateFeePolicy) *ArrearsAggregator {
	if policy == nil {
		policy = DefaultLateFeePolicy()
	}
	return &ArrearsAggregator{reader: reader, policy: policy}
}

// CalculateTenantOwedAmount sums what the tenant owes on periods due on or
// before asOf. Fees that would attach as of asOf are included.
func (a *ArrearsAggregator) CalculateTenantOwedAmount(ctx context.Context, tenantID uuid.UUID, asOf valueobject.Date) (*TenantArrears, error) {
	if _, err := a.reader.GetLease(ctx, tenantID); err != nil {
		return nil, err
	}

	periods, err := a.reader.ListPeriodsForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}

	out := &TenantArrears{
		TenantID:      tenantID,
		AsOf:          asOf,
		TotalOwed:     decimal.Zero,
		TotalLateFees: decimal.Zero,
	}
	for _, stored := range periods {
		if stored.EffectiveDueDate().After(asOf) {
			continue
		}
		p := *stored
		if _, err := a.policy.ApplyLateFeeIfDue(&p, asOf); err != nil {
			return nil, err
		}

		status := p.StatusAsOf(asOf, a.policy.GraceDays())
		if status == PeriodStatusPaid {
			continue
		}
		out.OpenPeriods++
		out.TotalOwed = out.TotalOwed.Add(p.Outstanding())
		out.TotalLateFees = out.TotalLateFees.Add(p.OutstandingFee())
		if status == PeriodStatusOverdue {
			out.MissedPeriods++
		}
	}
	return out, nil
}

// GetCollectedTotal sums payments dated within [Start, End]. A tenant filter
// yields a per-property breakdown and a property filter a per-tenant one;
// with no filter both are filled, with both filters neither is.
func (a *ArrearsAggregator) GetCollectedTotal(ctx context.Context, q CollectionQuery) (*CollectionSummary, error) {
	if q.Start.IsZero() || q.End.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Start and end dates are required")
	}
	if q.Start.After(q.End) {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Start date %s is after end date %s", q.Start, q.End))
	}

	payments, err := a.reader.ListPaymentsInRange(ctx, PaymentRangeFilter(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	summary := &CollectionSummary{
		Start:          q.Start,
		End:            q.End,
		TotalCollected: decimal.Zero,
		TotalAllocated: decimal.Zero,
		TotalUnapplied: decimal.Zero,
	}
	if len(payments) == 0 {
		return summary, nil
	}

	ids := make([]uuid.UUID, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID)
	}
	allocs, err := a.reader.ListAllocationsForPayments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	allocated := make(map[uuid.UUID]decimal.Decimal, len(payments))
	for _, al := range allocs {
		allocated[al.PaymentID] = allocated[al.PaymentID].Add(al.AmountAllocated)
	}

	byTenant := newBreakdown()
	byProperty := newBreakdown()
	for _, p := range payments {
		cash := allocated[p.ID].Add(p.UnappliedAmount)

		summary.PaymentCount++
		summary.TotalAllocated = summary.TotalAllocated.Add(allocated[p.ID])
		summary.TotalUnapplied = summary.TotalUnapplied.Add(p.UnappliedAmount)
		summary.TotalCollected = summary.TotalCollected.Add(cash)

		byTenant.add(p.TenantID, cash)
		byProperty.add(p.PropertyID, cash)
	}

	if q.TenantID == nil {
		summary.ByTenant = byTenant.entries()
	}
	if q.PropertyID == nil {
		summary.ByProperty = byProperty.entries()
	}
	return summary, nil
}

type breakdown map[uuid.UUID]*BreakdownEntry

func newBreakdown() breakdown {
	return make(breakdown)
}

func (b breakdown) add(id uuid.UUID, amount decimal.Decimal) {
	e, ok := b[id]
	if !ok {
		e = &BreakdownEntry{ID: id, TotalCollected: decimal.Zero}
		b[id] = e
	}
	e.TotalCollected = e.TotalCollected.Add(amount)
	e.PaymentCount++
}

// entries returns the breakdown sorted by amount desc, then ID.
func (b breakdown) entries() []BreakdownEntry {
	out := make([]BreakdownEntry, 0, len(b))
	for _, e := range b {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalCollected.Cmp(out[j].TotalCollected); c != 0 {
			return c > 0
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
