package ledger

import (
	"testing"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLateFeePolicy_Table(t *testing.T) {
	p := DefaultLateFeePolicy()
	assert.Equal(t, DefaultGraceDays, p.GraceDays())

	weekly, err := p.LateFeeAmount(CadenceWeekly)
	require.NoError(t, err)
	biWeekly, err := p.LateFeeAmount(CadenceBiWeekly)
	require.NoError(t, err)
	monthly, err := p.LateFeeAmount(CadenceMonthly)
	require.NoError(t, err)

	assert.True(t, weekly.Equal(decimal.NewFromInt(15)))
	assert.True(t, biWeekly.Equal(decimal.NewFromInt(25)))
	assert.True(t, monthly.Equal(decimal.NewFromInt(45)))

	_, err = p.LateFeeAmount(Cadence("daily"))
	assert.ErrorIs(t, err, ErrInvalidLease)
}

func TestNewLateFeePolicy_Options(t *testing.T) {
	t.Run("overrides keep ordering", func(t *testing.T) {
		p, err := NewLateFeePolicy(WithFee(CadenceMonthly, decimal.NewFromInt(50)), WithGraceDays(3))
		require.NoError(t, err)
		fee, _ := p.LateFeeAmount(CadenceMonthly)
		assert.True(t, fee.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, 3, p.GraceDays())
	})

	t.Run("weekly may not exceed monthly", func(t *testing.T) {
		_, err := NewLateFeePolicy(WithFee(CadenceWeekly, decimal.NewFromInt(60)))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("negative fee rejected", func(t *testing.T) {
		_, err := NewLateFeePolicy(WithFee(CadenceWeekly, decimal.NewFromInt(-1)))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("negative grace clamps to zero", func(t *testing.T) {
		p, err := NewLateFeePolicy(WithGraceDays(-2))
		require.NoError(t, err)
		assert.Equal(t, 0, p.GraceDays())
	})
}

func TestLateFeePolicy_ApplyLateFeeIfDue(t *testing.T) {
	policy := DefaultLateFeePolicy()
	lease := newTestLease(t, CadenceMonthly, "2024-01-01", "", 1000)

	t.Run("not late inside grace", func(t *testing.T) {
		p := NewRentPeriod(lease, date("2024-01-01"))
		changed, err := policy.ApplyLateFeeIfDue(p, date("2024-01-06"))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.True(t, p.LateFeeApplied.IsZero())
	})

	t.Run("attaches the cadence fee once", func(t *testing.T) {
		p := NewRentPeriod(lease, date("2024-01-01"))
		changed, err := policy.ApplyLateFeeIfDue(p, date("2024-01-10"))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, p.LateFeeApplied.Equal(decimal.NewFromInt(45)))

		changed, err = policy.ApplyLateFeeIfDue(p, date("2024-03-10"))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.True(t, p.LateFeeApplied.Equal(decimal.NewFromInt(45)), "fees never compound")
	})

	t.Run("uses the period's own cadence", func(t *testing.T) {
		weekly := newTestLease(t, CadenceWeekly, "2024-01-01", "", 300)
		p := NewRentPeriod(weekly, date("2024-01-01"))
		_, err := policy.ApplyLateFeeIfDue(p, date("2024-01-20"))
		require.NoError(t, err)
		assert.True(t, p.LateFeeApplied.Equal(decimal.NewFromInt(15)))
	})

	t.Run("waived periods never get a fee", func(t *testing.T) {
		p := NewRentPeriod(lease, date("2024-01-01"))
		p.LateFeeWaived = true
		changed, err := policy.ApplyLateFeeIfDue(p, date("2024-02-01"))
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("override due date moves the grace window", func(t *testing.T) {
		p := NewRentPeriod(lease, date("2024-01-01"))
		p.DueDateOverride = date("2024-01-08")
		changed, err := policy.ApplyLateFeeIfDue(p, date("2024-01-10"))
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestLateFeePolicy_WaiveLateFee(t *testing.T) {
	policy := DefaultLateFeePolicy()
	lease := newTestLease(t, CadenceMonthly, "2024-01-01", "", 1000)

	t.Run("waiving an unpaid fee settles a rent-paid period", func(t *testing.T) {
		p := NewRentPeriod(lease, date("2024-01-01"))
		p.LateFeeApplied = decimal.NewFromInt(45)
		require.NoError(t, p.ApplyAllocation(decimal.Zero, decimal.NewFromInt(1000)))
		p.Status = PeriodStatusOverdue

		require.NoError(t, policy.WaiveLateFee(p, date("2024-01-20")))
		assert.True(t, p.LateFeeWaived)
		assert.Equal(t, PeriodStatusPaid, p.Status)
	})

	t.Run("refused once the fee was collected", func(t *testing.T) {
		p := NewRentPeriod(lease, date("2024-01-01"))
		p.LateFeeApplied = decimal.NewFromInt(45)
		require.NoError(t, p.ApplyAllocation(decimal.NewFromInt(45), decimal.Zero))

		err := policy.WaiveLateFee(p, date("2024-01-20"))
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.False(t, p.LateFeeWaived)
	})
}
