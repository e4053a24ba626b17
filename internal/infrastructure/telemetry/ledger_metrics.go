package telemetry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Ledger metric names
const (
	MetricPaymentsAllocated    = "ledger_payments_allocated_total"
	MetricAllocationConflicts  = "ledger_allocation_conflicts_total"
	MetricAllocationDuration   = "ledger_allocation_duration_seconds"
	MetricUnappliedRemainder   = "ledger_unapplied_remainder"
	MetricPeriodsGenerated     = "ledger_periods_generated_total"
	MetricLateFeesWaived       = "ledger_late_fees_waived_total"
	MetricIdempotentReplays    = "ledger_idempotent_replays_total"
	MetricArrearsCacheRequests = "ledger_arrears_cache_requests_total"
)

// LedgerMetrics groups the instruments recorded by the ledger service.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	paymentsAllocated *Counter
	conflicts         *Counter
	duration          *Histogram
	remainder         *Histogram
	periodsGenerated  *Counter
	feesWaived        *Counter
	replays           *Counter
	cacheRequests     *Counter
}

// NewLedgerMetrics registers the ledger instruments on meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	var (
		m   LedgerMetrics
		err error
	)
	if m.paymentsAllocated, err = NewCounter(meter, MetricPaymentsAllocated, "Payments run through the allocation waterfall", "{payment}"); err != nil {
		return nil, err
	}
	if m.conflicts, err = NewCounter(meter, MetricAllocationConflicts, "Allocation attempts aborted by a concurrent writer", "{conflict}"); err != nil {
		return nil, err
	}
	if m.duration, err = NewHistogram(meter, HistogramOpts{
		Name:        MetricAllocationDuration,
		Description: "Time to allocate one payment, retries included",
		Unit:        "s",
		Boundaries:  []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}); err != nil {
		return nil, err
	}
	if m.remainder, err = NewHistogram(meter, HistogramOpts{
		Name:        MetricUnappliedRemainder,
		Description: "Cash left unapplied after allocation",
		Unit:        "{currency}",
	}); err != nil {
		return nil, err
	}
	if m.periodsGenerated, err = NewCounter(meter, MetricPeriodsGenerated, "Rent periods inserted", "{period}"); err != nil {
		return nil, err
	}
	if m.feesWaived, err = NewCounter(meter, MetricLateFeesWaived, "Late fees waived", "{fee}"); err != nil {
		return nil, err
	}
	if m.replays, err = NewCounter(meter, MetricIdempotentReplays, "Payment submissions answered from the idempotency store", "{request}"); err != nil {
		return nil, err
	}
	if m.cacheRequests, err = NewCounter(meter, MetricArrearsCacheRequests, "Arrears cache lookups", "{request}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordAllocation records one completed allocation.
func (m *LedgerMetrics) RecordAllocation(ctx context.Context, strategy string, elapsed time.Duration, remainder decimal.Decimal) {
	if m == nil {
		return
	}
	attrs := attribute.String("strategy", strategy)
	m.paymentsAllocated.Inc(ctx, attrs)
	m.duration.RecordDuration(ctx, elapsed, attrs)
	m.remainder.Record(ctx, remainder.InexactFloat64(), attrs)
}

// RecordConflict counts one retryable allocation failure.
func (m *LedgerMetrics) RecordConflict(ctx context.Context) {
	if m == nil {
		return
	}
	m.conflicts.Inc(ctx)
}

// RecordPeriodsGenerated counts inserted rent periods.
func (m *LedgerMetrics) RecordPeriodsGenerated(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.periodsGenerated.Add(ctx, int64(n))
}

// RecordFeeWaived counts one waiver.
func (m *LedgerMetrics) RecordFeeWaived(ctx context.Context) {
	if m == nil {
		return
	}
	m.feesWaived.Inc(ctx)
}

// RecordReplay counts a payment answered from the idempotency store.
func (m *LedgerMetrics) RecordReplay(ctx context.Context) {
	if m == nil {
		return
	}
	m.replays.Inc(ctx)
}

// RecordCacheLookup counts an arrears cache lookup by outcome.
func (m *LedgerMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	m.cacheRequests.Inc(ctx, attribute.Bool("hit", hit))
}
