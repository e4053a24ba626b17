package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// memoryLedger is an in-memory LedgerRepository with snapshot transactions.
type memoryLedger struct {
	mu          sync.Mutex
	leases      map[uuid.UUID]Lease
	periods     map[uuid.UUID]RentPeriod
	payments    map[uuid.UUID]Payment
	allocations map[uuid.UUID]PaymentAllocation

	// failPeriodLookup makes FindPeriod fail for the given ID.
	failPeriodLookup uuid.UUID
	// conflictOnUpsert makes the n-th versioned update report a lost update.
	conflictOnUpsert int
	upserts          int
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		leases:      make(map[uuid.UUID]Lease),
		periods:     make(map[uuid.UUID]RentPeriod),
		payments:    make(map[uuid.UUID]Payment),
		allocations: make(map[uuid.UUID]PaymentAllocation),
	}
}

type memorySnapshot struct {
	leases      map[uuid.UUID]Lease
	periods     map[uuid.UUID]RentPeriod
	payments    map[uuid.UUID]Payment
	allocations map[uuid.UUID]PaymentAllocation
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m *memoryLedger) snapshot() memorySnapshot {
	return memorySnapshot{
		leases:      copyMap(m.leases),
		periods:     copyMap(m.periods),
		payments:    copyMap(m.payments),
		allocations: copyMap(m.allocations),
	}
}

func (m *memoryLedger) restore(s memorySnapshot) {
	m.leases = s.leases
	m.periods = s.periods
	m.payments = s.payments
	m.allocations = s.allocations
}

// Within implements LedgerUnitOfWork.
func (m *memoryLedger) Within(ctx context.Context, fn func(repo LedgerRepository) error) error {
	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memoryLedger) addLease(l *Lease) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leases[l.ID] = *l
}

func (m *memoryLedger) GetLease(ctx context.Context, tenantID uuid.UUID) (*Lease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var found *Lease
	for _, l := range m.leases {
		if l.TenantID != tenantID {
			continue
		}
		if found == nil || l.StartDate.After(found.StartDate) {
			c := l
			found = &c
		}
	}
	if found == nil {
		return nil, TenantNotFoundError(tenantID)
	}
	return found, nil
}

func (m *memoryLedger) sortedPeriods(keep func(RentPeriod) bool) []*RentPeriod {
	out := make([]*RentPeriod, 0)
	for _, p := range m.periods {
		if keep(p) {
			c := p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].PeriodDueDate.Compare(out[j].PeriodDueDate); c != 0 {
			return c < 0
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (m *memoryLedger) ListOutstandingPeriods(ctx context.Context, tenantID uuid.UUID) ([]*RentPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedPeriods(func(p RentPeriod) bool {
		return p.TenantID == tenantID && p.Status != PeriodStatusPaid
	}), nil
}

func (m *memoryLedger) ListPeriodsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*RentPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedPeriods(func(p RentPeriod) bool { return p.TenantID == tenantID }), nil
}

func (m *memoryLedger) ListPeriodsForLease(ctx context.Context, leaseID uuid.UUID) ([]*RentPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedPeriods(func(p RentPeriod) bool { return p.LeaseID == leaseID }), nil
}

func (m *memoryLedger) FindPeriod(ctx context.Context, id uuid.UUID) (*RentPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == m.failPeriodLookup {
		return nil, shared.ErrNotFound
	}
	p, ok := m.periods[id]
	if !ok {
		return nil, PeriodNotFoundError(id)
	}
	return &p, nil
}

func (m *memoryLedger) UpsertPeriod(ctx context.Context, period *RentPeriod) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if period.Version <= 1 {
		for _, p := range m.periods {
			if p.LeaseID == period.LeaseID && p.PeriodDueDate.Equal(period.PeriodDueDate) {
				return nil
			}
		}
		m.periods[period.ID] = *period
		return nil
	}

	m.upserts++
	stored, ok := m.periods[period.ID]
	if !ok {
		return PeriodNotFoundError(period.ID)
	}
	if stored.Version != period.Version-1 || m.upserts == m.conflictOnUpsert {
		return AllocationConflictError("rent period version mismatch")
	}
	m.periods[period.ID] = *period
	return nil
}

func (m *memoryLedger) InsertAllocation(ctx context.Context, alloc *PaymentAllocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocations[alloc.ID] = *alloc
	return nil
}

func (m *memoryLedger) DeleteAllocationsForPayment(ctx context.Context, paymentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.allocations {
		if a.PaymentID == paymentID {
			delete(m.allocations, id)
		}
	}
	return nil
}

func (m *memoryLedger) ListAllocationsForPayment(ctx context.Context, paymentID uuid.UUID) ([]*PaymentAllocation, error) {
	return m.ListAllocationsForPayments(ctx, []uuid.UUID{paymentID})
}

func (m *memoryLedger) ListAllocationsForPayments(ctx context.Context, paymentIDs []uuid.UUID) ([]*PaymentAllocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	want := make(map[uuid.UUID]bool, len(paymentIDs))
	for _, id := range paymentIDs {
		want[id] = true
	}
	out := make([]*PaymentAllocation, 0)
	for _, a := range m.allocations {
		if want[a.PaymentID] {
			c := a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (m *memoryLedger) FindPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (m *memoryLedger) SavePayment(ctx context.Context, payment *Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = *payment
	return nil
}

func (m *memoryLedger) ListPaymentsInRange(ctx context.Context, filter PaymentRangeFilter) ([]*Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Payment, 0)
	for _, p := range m.payments {
		if p.PaymentDate.Before(filter.Start) || p.PaymentDate.After(filter.End) {
			continue
		}
		if filter.TenantID != nil && p.TenantID != *filter.TenantID {
			continue
		}
		if filter.PropertyID != nil && p.PropertyID != *filter.PropertyID {
			continue
		}
		c := p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.Before(out[j].PaymentDate) })
	return out, nil
}

// storePeriods persists generated periods the way the application layer does.
func (m *memoryLedger) storePeriods(periods []*RentPeriod) {
	for _, p := range periods {
		_ = m.UpsertPeriod(context.Background(), p)
	}
}

func (m *memoryLedger) period(id uuid.UUID) RentPeriod {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.periods[id]
}
