package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("valid ISO date", func(t *testing.T) {
		d, err := ParseDate("2024-02-29")
		require.NoError(t, err)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.February, d.Month())
		assert.Equal(t, 29, d.Day())
	})

	t.Run("rejects non-dates", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.Error(t, err)
		_, err = ParseDate("01/02/2024")
		assert.Error(t, err)
	})
}

func TestDate_AddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		months int
		want   string
	}{
		{"same day next month", "2024-01-15", 1, "2024-02-15"},
		{"clamps to leap february", "2024-01-31", 1, "2024-02-29"},
		{"clamps to short february", "2023-01-31", 1, "2023-02-28"},
		{"clamps to 30 day month", "2024-03-31", 1, "2024-04-30"},
		{"crosses year", "2024-12-31", 1, "2025-01-31"},
		{"multiple months from anchor", "2024-01-31", 2, "2024-03-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseDate(tt.from).AddMonthsClamped(tt.months)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDate_DaysSince(t *testing.T) {
	a := MustParseDate("2024-03-01")
	b := MustParseDate("2024-02-01")
	assert.Equal(t, 29, a.DaysSince(b))
	assert.Equal(t, -29, b.DaysSince(a))
	assert.Equal(t, 0, a.DaysSince(a))
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	d := DateOf(time.Date(2024, 5, 1, 23, 59, 0, 0, loc))
	assert.Equal(t, "2024-05-01", d.String())
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Due  Date `json:"due"`
		Skip Date `json:"skip"`
	}

	data, err := json.Marshal(payload{Due: MustParseDate("2024-01-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-01-01","skip":null}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-07-04","skip":null}`), &p))
	assert.True(t, p.Due.Equal(NewDate(2024, time.July, 4)))
	assert.True(t, p.Skip.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"due":"July 4"}`), &p))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-02", d.String())

	require.NoError(t, d.Scan("2024-01-03 00:00:00+00:00"))
	assert.Equal(t, "2024-01-03", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-04")))
	assert.Equal(t, "2024-01-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}
