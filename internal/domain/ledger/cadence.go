package ledger

import (
	"strings"

	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// Cadence is the recurrence unit of rent obligations
type Cadence string

const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiWeekly Cadence = "bi_weekly"
	CadenceMonthly  Cadence = "monthly"
)

const (
	// DefaultGraceDays is the window after a due date before a period is late.
	DefaultGraceDays = 5

	// MaxFutureDueDates bounds GenerateFutureDueDates (ten years of weeks).
	MaxFutureDueDates = 520
)

// ParseCadence normalises a cadence name. Hyphenated and joined bi-weekly
// spellings are accepted.
func ParseCadence(s string) (Cadence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly":
		return CadenceWeekly, nil
	case "bi_weekly", "biweekly", "bi-weekly":
		return CadenceBiWeekly, nil
	case "monthly":
		return CadenceMonthly, nil
	default:
		return "", InvalidLeaseError("unrecognized cadence %q", s)
	}
}

// String returns the string representation of the cadence
func (c Cadence) String() string {
	return string(c)
}

// IsValid returns true if the cadence is one of the known values
func (c Cadence) IsValid() bool {
	switch c {
	case CadenceWeekly, CadenceBiWeekly, CadenceMonthly:
		return true
	default:
		return false
	}
}

// AllCadences returns all valid cadences, shortest first
func AllCadences() []Cadence {
	return []Cadence{CadenceWeekly, CadenceBiWeekly, CadenceMonthly}
}

// AddCadenceDays advances date by one cadence tick. Monthly keeps the day of
// month, clamped to the end of a shorter month.
func AddCadenceDays(date valueobject.Date, cadence Cadence) (valueobject.Date, error) {
	return DueDateAt(date, cadence, 1)
}

// NextDueDate returns the due date following dueDate.
func NextDueDate(dueDate valueobject.Date, cadence Cadence) (valueobject.Date, error) {
	return AddCadenceDays(dueDate, cadence)
}

// DueDateAt returns the n-th due date counted from anchor (n = 0 is the
// anchor itself). Monthly dates are computed from the anchor rather than
// chained, so a clamp in February does not drag later months to the 29th.
func DueDateAt(anchor valueobject.Date, cadence Cadence, n int) (valueobject.Date, error) {
	switch cadence {
	case CadenceWeekly:
		return anchor.AddDays(7 * n), nil
	case CadenceBiWeekly:
		return anchor.AddDays(14 * n), nil
	case CadenceMonthly:
		return anchor.AddMonthsClamped(n), nil
	default:
		return valueobject.Date{}, InvalidLeaseError("unrecognized cadence %q", cadence)
	}
}

// GenerateFutureDueDates returns count consecutive due dates starting at
// startDate. count is capped at MaxFutureDueDates.
func GenerateFutureDueDates(startDate valueobject.Date, cadence Cadence, count int) ([]valueobject.Date, error) {
	if !cadence.IsValid() {
		return nil, InvalidLeaseError("unrecognized cadence %q", cadence)
	}
	if count <= 0 {
		return []valueobject.Date{}, nil
	}
	if count > MaxFutureDueDates {
		count = MaxFutureDueDates
	}

	dates := make([]valueobject.Date, 0, count)
	for i := 0; i < count; i++ {
		d, err := DueDateAt(startDate, cadence, i)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// IsPeriodLate reports whether asOf is past dueDate + graceDays.
func IsPeriodLate(dueDate, asOf valueobject.Date, graceDays int) bool {
	return CalculateDaysLate(dueDate, asOf, graceDays) > 0
}

// CalculateDaysLate returns whole days elapsed after the grace window, never negative.
func CalculateDaysLate(dueDate, asOf valueobject.Date, graceDays int) int {
	if graceDays < 0 {
		graceDays = 0
	}
	days := asOf.DaysSince(dueDate.AddDays(graceDays))
	if days < 0 {
		return 0
	}
	return days
}
