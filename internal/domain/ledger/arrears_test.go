package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordPayment stores a payment and its allocation outcome the way the
// payment service does.
func (f *engineFixture) recordPayment(t *testing.T, amount, on string) *Payment {
	t.Helper()
	p, err := NewPayment(f.lease.TenantID, f.lease.PropertyID, dec(amount), date(on), "")
	require.NoError(t, err)
	res := f.allocate(t, p.ID, amount, on)
	p.RecordAllocation(res)
	require.NoError(t, f.store.SavePayment(context.Background(), p))
	return p
}

func TestCalculateTenantOwedAmount(t *testing.T) {
	ctx := context.Background()

	t.Run("unpaid periods accrue fees as of the report date", func(t *testing.T) {
		f := newEngineFixture(t, CadenceMonthly, "2024-01-01", 1000)
		periods := f.generate(t, "2024-03-01")
		agg := NewArrearsAggregator(f.store, nil)

		arrears, err := agg.CalculateTenantOwedAmount(ctx, f.lease.TenantID, date("2024-02-10"))
		require.NoError(t, err)

		assert.True(t, arrears.TotalOwed.Equal(dec("2090")), arrears.TotalOwed.String())
		assert.True(t, arrears.TotalLateFees.Equal(dec("90")))
		assert.Equal(t, 2, arrears.MissedPeriods)
		assert.Equal(t, 2, arrears.OpenPeriods)

		// read side never attaches fees
		for _, p := range periods {
			assert.True(t, f.store.period(p.ID).LateFeeApplied.IsZero())
		}
	})

	t.Run("paid periods are excluded", func(t *testing.T) {
		f := newEngineFixture(t, CadenceMonthly, "2024-01-01", 1000)
		f.generate(t, "2024-03-01")
		f.recordPayment(t, "1045", "2024-01-10")
		agg := NewArrearsAggregator(f.store, nil)

		arrears, err := agg.CalculateTenantOwedAmount(ctx, f.lease.TenantID, date("2024-02-10"))
		require.NoError(t, err)

		assert.True(t, arrears.TotalOwed.Equal(dec("1045")))
		assert.Equal(t, 1, arrears.MissedPeriods)
		assert.Equal(t, 1, arrears.OpenPeriods)
	})

	t.Run("within grace nothing is missed", func(t *testing.T) {
		f := newEngineFixture(t, CadenceMonthly, "2024-01-01", 1000)
		f.generate(t, "2024-01-01")
		agg := NewArrearsAggregator(f.store, nil)

		arrears, err := agg.CalculateTenantOwedAmount(ctx, f.lease.TenantID, date("2024-01-04"))
		require.NoError(t, err)

		assert.True(t, arrears.TotalOwed.Equal(dec("1000")))
		assert.True(t, arrears.TotalLateFees.IsZero())
		assert.Equal(t, 0, arrears.MissedPeriods)
		assert.Equal(t, 1, arrears.OpenPeriods)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		f := newEngineFixture(t, CadenceMonthly, "2024-01-01", 1000)
		agg := NewArrearsAggregator(f.store, nil)

		_, err := agg.CalculateTenantOwedAmount(ctx, uuid.New(), date("2024-01-04"))
		assert.ErrorIs(t, err, ErrTenantNotFound)
	})
}

func TestGetCollectedTotal(t *testing.T) {
	ctx := context.Background()

	a := newEngineFixture(t, CadenceMonthly, "2024-01-01", 1000)
	a.generate(t, "2024-01-01")
	b := &engineFixture{store: a.store, engine: a.engine, lease: newTestLease(t, CadenceMonthly, "2024-01-01", "", 1000)}
	a.store.addLease(b.lease)
	b.generate(t, "2024-01-01")

	a.recordPayment(t, "1200", "2024-01-10")
	b.recordPayment(t, "1000", "2024-01-03")
	a.recordPayment(t, "300", "2024-02-02")

	agg := NewArrearsAggregator(a.store, nil)
	january := CollectionQuery{Start: date("2024-01-01"), End: date("2024-01-31")}

	t.Run("range totals count unapplied credit as collected", func(t *testing.T) {
		summary, err := agg.GetCollectedTotal(ctx, january)
		require.NoError(t, err)

		assert.True(t, summary.TotalCollected.Equal(dec("2200")), summary.TotalCollected.String())
		assert.True(t, summary.TotalAllocated.Equal(dec("2045")))
		assert.True(t, summary.TotalUnapplied.Equal(dec("155")))
		assert.Equal(t, 2, summary.PaymentCount)
		require.Len(t, summary.ByTenant, 2)
		require.Len(t, summary.ByProperty, 2)
		assert.Equal(t, a.lease.TenantID, summary.ByTenant[0].ID)
		assert.True(t, summary.ByTenant[0].TotalCollected.Equal(dec("1200")))
	})

	t.Run("tenant filter breaks down by property", func(t *testing.T) {
		q := january
		q.TenantID = &a.lease.TenantID
		summary, err := agg.GetCollectedTotal(ctx, q)
		require.NoError(t, err)

		assert.True(t, summary.TotalCollected.Equal(dec("1200")))
		assert.Nil(t, summary.ByTenant)
		require.Len(t, summary.ByProperty, 1)
		assert.Equal(t, a.lease.PropertyID, summary.ByProperty[0].ID)
	})

	t.Run("property filter breaks down by tenant", func(t *testing.T) {
		q := january
		q.PropertyID = &b.lease.PropertyID
		summary, err := agg.GetCollectedTotal(ctx, q)
		require.NoError(t, err)

		assert.True(t, summary.TotalCollected.Equal(dec("1000")))
		assert.Nil(t, summary.ByProperty)
		require.Len(t, summary.ByTenant, 1)
		assert.Equal(t, b.lease.TenantID, summary.ByTenant[0].ID)
	})

	t.Run("both filters give no breakdown", func(t *testing.T) {
		q := january
		q.TenantID = &a.lease.TenantID
		q.PropertyID = &a.lease.PropertyID
		summary, err := agg.GetCollectedTotal(ctx, q)
		require.NoError(t, err)

		assert.Equal(t, 1, summary.PaymentCount)
		assert.Nil(t, summary.ByTenant)
		assert.Nil(t, summary.ByProperty)
	})

	t.Run("empty range", func(t *testing.T) {
		summary, err := agg.GetCollectedTotal(ctx, CollectionQuery{Start: date("2023-01-01"), End: date("2023-12-31")})
		require.NoError(t, err)
		assert.True(t, summary.TotalCollected.IsZero())
		assert.Zero(t, summary.PaymentCount)
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		summary, err := agg.GetCollectedTotal(ctx, CollectionQuery{Start: date("2024-01-10"), End: date("2024-02-02")})
		require.NoError(t, err)
		assert.Equal(t, 2, summary.PaymentCount)
		assert.True(t, summary.TotalCollected.Equal(dec("1500")))
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := agg.GetCollectedTotal(ctx, CollectionQuery{Start: date("2024-02-01"), End: date("2024-01-01")})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = agg.GetCollectedTotal(ctx, CollectionQuery{Start: date("2024-02-01")})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
