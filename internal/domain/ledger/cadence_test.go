package ledger

import (
	"testing"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) valueobject.Date {
	return valueobject.MustParseDate(s)
}

func TestParseCadence(t *testing.T) {
	tests := []struct {
		in      string
		want    Cadence
		wantErr bool
	}{
		{"weekly", CadenceWeekly, false},
		{"bi_weekly", CadenceBiWeekly, false},
		{"bi-weekly", CadenceBiWeekly, false},
		{"BiWeekly", CadenceBiWeekly, false},
		{" Monthly ", CadenceMonthly, false},
		{"yearly", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCadence(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLease)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddCadenceDays(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		cadence Cadence
		want    string
	}{
		{"weekly adds seven days", "2024-01-29", CadenceWeekly, "2024-02-05"},
		{"bi-weekly adds fourteen days", "2024-12-25", CadenceBiWeekly, "2025-01-08"},
		{"monthly keeps day of month", "2024-01-15", CadenceMonthly, "2024-02-15"},
		{"monthly clamps to leap day", "2024-01-31", CadenceMonthly, "2024-02-29"},
		{"monthly clamps to april 30", "2024-03-31", CadenceMonthly, "2024-04-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddCadenceDays(date(tt.from), tt.cadence)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())

			next, err := NextDueDate(date(tt.from), tt.cadence)
			require.NoError(t, err)
			assert.True(t, next.Equal(got))
		})
	}

	t.Run("unknown cadence", func(t *testing.T) {
		_, err := AddCadenceDays(date("2024-01-01"), Cadence("daily"))
		assert.ErrorIs(t, err, ErrInvalidLease)
		assert.Equal(t, CodeInvalidLease, shared.ErrorCode(err))
	})
}

func TestDueDateAt_MonthlyAnchoredOnStart(t *testing.T) {
	anchor := date("2024-01-31")
	want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30", "2024-05-31"}
	for i, w := range want {
		got, err := DueDateAt(anchor, CadenceMonthly, i)
		require.NoError(t, err)
		assert.Equal(t, w, got.String(), "tick %d", i)
	}
}

func TestGenerateFutureDueDates(t *testing.T) {
	t.Run("produces count dates from start", func(t *testing.T) {
		dates, err := GenerateFutureDueDates(date("2024-01-01"), CadenceBiWeekly, 3)
		require.NoError(t, err)
		require.Len(t, dates, 3)
		assert.Equal(t, "2024-01-01", dates[0].String())
		assert.Equal(t, "2024-01-15", dates[1].String())
		assert.Equal(t, "2024-01-29", dates[2].String())
	})

	t.Run("zero or negative count is empty", func(t *testing.T) {
		dates, err := GenerateFutureDueDates(date("2024-01-01"), CadenceWeekly, 0)
		require.NoError(t, err)
		assert.Empty(t, dates)

		dates, err = GenerateFutureDueDates(date("2024-01-01"), CadenceWeekly, -4)
		require.NoError(t, err)
		assert.Empty(t, dates)
	})

	t.Run("count is bounded", func(t *testing.T) {
		dates, err := GenerateFutureDueDates(date("2024-01-01"), CadenceWeekly, MaxFutureDueDates*10)
		require.NoError(t, err)
		assert.Len(t, dates, MaxFutureDueDates)
	})

	t.Run("unknown cadence", func(t *testing.T) {
		_, err := GenerateFutureDueDates(date("2024-01-01"), Cadence(""), 2)
		assert.ErrorIs(t, err, ErrInvalidLease)
	})
}

func TestIsPeriodLate(t *testing.T) {
	due := date("2024-01-01")

	assert.False(t, IsPeriodLate(due, date("2023-12-31"), DefaultGraceDays))
	assert.False(t, IsPeriodLate(due, date("2024-01-01"), DefaultGraceDays))
	assert.False(t, IsPeriodLate(due, date("2024-01-06"), DefaultGraceDays), "last grace day is on time")
	assert.True(t, IsPeriodLate(due, date("2024-01-07"), DefaultGraceDays))
	assert.True(t, IsPeriodLate(due, date("2024-01-02"), 0))
	assert.True(t, IsPeriodLate(due, date("2024-01-02"), -3), "negative grace behaves as zero")
}

func TestCalculateDaysLate(t *testing.T) {
	due := date("2024-01-01")

	assert.Equal(t, 0, CalculateDaysLate(due, date("2023-12-01"), DefaultGraceDays))
	assert.Equal(t, 0, CalculateDaysLate(due, date("2024-01-06"), DefaultGraceDays))
	assert.Equal(t, 1, CalculateDaysLate(due, date("2024-01-07"), DefaultGraceDays))
	assert.Equal(t, 4, CalculateDaysLate(due, date("2024-01-10"), DefaultGraceDays))
	assert.Equal(t, 31, CalculateDaysLate(due, date("2024-02-06"), DefaultGraceDays))
}
