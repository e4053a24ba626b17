package ledger

import (
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// MaxGeneratedPeriods caps the due dates walked for one lease (twenty years
// of weeks). Reaching it is reported as GENERATION_LIMIT.
const MaxGeneratedPeriods = 1040

// PlanDueDates returns the lease's due dates from its start up to and
// including the first one at or after horizon. Dates after the lease's end
// date are never produced.
func PlanDueDates(lease *Lease, horizon valueobject.Date) ([]valueobject.Date, error) {
	if err := lease.Validate(); err != nil {
		return nil, err
	}

	dates := make([]valueobject.Date, 0)
	for i := 0; ; i++ {
		due, err := DueDateAt(lease.StartDate, lease.Cadence, i)
		if err != nil {
			return nil, err
		}
		if !lease.IsOpenEnded() && due.After(lease.EndDate) {
			return dates, nil
		}
		if i == MaxGeneratedPeriods {
			return nil, GenerationLimitError(lease.ID, horizon)
		}
		dates = append(dates, due)
		if !due.Before(horizon) {
			return dates, nil
		}
	}
}

// GeneratePeriods materialises the periods PlanDueDates yields that are not
// already present in existing (matched by lease and due date). Calling it
// again with the same horizon and the previous output returns nothing.
func GeneratePeriods(lease *Lease, horizon valueobject.Date, existing []*RentPeriod) ([]*RentPeriod, error) {
	dates, err := PlanDueDates(lease, horizon)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		if p.LeaseID == lease.ID {
			seen[p.PeriodDueDate.String()] = struct{}{}
		}
	}

	created := make([]*RentPeriod, 0)
	for _, due := range dates {
		if _, ok := seen[due.String()]; ok {
			continue
		}
		created = append(created, NewRentPeriod(lease, due))
		seen[due.String()] = struct{}{}
	}
	return created, nil
}

// CurrentDueDate returns the latest due date on or before asOf, bounded by
// the lease's end date. ok is false when the lease has not started by asOf.
func CurrentDueDate(lease *Lease, asOf valueobject.Date) (due valueobject.Date, ok bool, err error) {
	if err := lease.Validate(); err != nil {
		return valueobject.Date{}, false, err
	}
	if asOf.Before(lease.StartDate) {
		return valueobject.Date{}, false, nil
	}

	limit := asOf
	if !lease.IsOpenEnded() && lease.EndDate.Before(limit) {
		limit = lease.EndDate
	}

	due = lease.StartDate
	for i := 1; ; i++ {
		next, err := DueDateAt(lease.StartDate, lease.Cadence, i)
		if err != nil {
			return valueobject.Date{}, false, err
		}
		if next.After(limit) {
			return due, true, nil
		}
		if i == MaxGeneratedPeriods {
			return valueobject.Date{}, false, GenerationLimitError(lease.ID, asOf)
		}
		due = next
	}
}
