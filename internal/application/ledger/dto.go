package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Lease DTOs
// =============================================================================

// CreateLeaseRequest represents a request to create a lease
type CreateLeaseRequest struct {
	TenantID   uuid.UUID `json:"tenant_id" binding:"required"`
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	RentAmount string    `json:"rent_amount" binding:"required,decimal_gt0"`
	Cadence    string    `json:"cadence" binding:"required,cadence"`
	StartDate  string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string    `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	// Draft keeps the lease pending instead of activating it right away
	Draft bool `json:"draft"`
}

// ListLeasesFilter selects leases for the paginated list
type ListLeasesFilter struct {
	// Tenant and property filters are parsed by the HTTP layer
	TenantID   *uuid.UUID `form:"-"`
	PropertyID *uuid.UUID `form:"-"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending active expired"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LeaseResponse represents a lease in API responses
type LeaseResponse struct {
	ID         uuid.UUID       `json:"id"`
	TenantID   uuid.UUID       `json:"tenant_id"`
	PropertyID uuid.UUID       `json:"property_id"`
	RentAmount decimal.Decimal `json:"rent_amount"`
	Cadence    string          `json:"cadence"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date,omitempty"`
	Status     string          `json:"status"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToLeaseResponse converts a domain lease
func ToLeaseResponse(l *ledger.Lease) LeaseResponse {
	resp := LeaseResponse{
		ID:         l.ID,
		TenantID:   l.TenantID,
		PropertyID: l.PropertyID,
		RentAmount: l.RentAmount,
		Cadence:    l.Cadence.String(),
		StartDate:  l.StartDate.String(),
		Status:     l.Status.String(),
		Version:    l.Version,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
	if !l.IsOpenEnded() {
		resp.EndDate = l.EndDate.String()
	}
	return resp
}

// =============================================================================
// Period DTOs
// =============================================================================

// GeneratePeriodsRequest asks for periods up to a horizon date
type GeneratePeriodsRequest struct {
	Horizon string `json:"horizon" binding:"required,datetime=2006-01-02"`
}

// PeriodResponse is a rent period with its status derived as of the request date
type PeriodResponse struct {
	ID               uuid.UUID       `json:"id"`
	LeaseID          uuid.UUID       `json:"lease_id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	PeriodDueDate    string          `json:"period_due_date"`
	EffectiveDueDate string          `json:"effective_due_date"`
	RentAmount       decimal.Decimal `json:"rent_amount"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	LateFeeApplied   decimal.Decimal `json:"late_fee_applied"`
	LateFeePaid      decimal.Decimal `json:"late_fee_paid"`
	LateFeeWaived    bool            `json:"late_fee_waived"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	Status           string          `json:"status"`
	Version          int             `json:"version"`
}

// ToPeriodResponse converts a period using the status it has as of the
// caller's date.
func ToPeriodResponse(p *ledger.RentPeriod, status ledger.PeriodStatus) PeriodResponse {
	return PeriodResponse{
		ID:               p.ID,
		LeaseID:          p.LeaseID,
		TenantID:         p.TenantID,
		PeriodDueDate:    p.PeriodDueDate.String(),
		EffectiveDueDate: p.EffectiveDueDate().String(),
		RentAmount:       p.RentAmount,
		AmountPaid:       p.AmountPaid,
		LateFeeApplied:   p.LateFeeApplied,
		LateFeePaid:      p.LateFeePaid,
		LateFeeWaived:    p.LateFeeWaived,
		Outstanding:      p.Outstanding(),
		Status:           status.String(),
		Version:          p.Version,
	}
}

// OverrideDueDateRequest moves a period's due date. An empty due_date clears
// the override.
type OverrideDueDateRequest struct {
	DueDate string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	AsOf    string `json:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// RefreshLeaseStatusRequest carries the date lease transitions are evaluated at
type RefreshLeaseStatusRequest struct {
	AsOf string `json:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// WaiveLateFeeRequest carries the date the waiver takes effect
type WaiveLateFeeRequest struct {
	AsOf string `json:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// =============================================================================
// Payment DTOs
// =============================================================================

// RecordPaymentRequest represents a request to record and allocate a payment
type RecordPaymentRequest struct {
	TenantID    uuid.UUID `json:"tenant_id" binding:"required"`
	Amount      string    `json:"amount" binding:"required,decimal_gt0"`
	PaymentDate string    `json:"payment_date" binding:"required,datetime=2006-01-02"`
	Notes       string    `json:"notes" binding:"max=500"`
}

// EditPaymentRequest represents an administrative correction of a payment
type EditPaymentRequest struct {
	Amount      *string `json:"amount" binding:"omitempty,decimal_gt0"`
	PaymentDate *string `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes" binding:"omitempty,max=500"`
}

// AllocationResponse is one stored allocation of a payment
type AllocationResponse struct {
	ID              uuid.UUID       `json:"id"`
	RentPeriodID    uuid.UUID       `json:"rent_period_id"`
	AmountAllocated decimal.Decimal `json:"amount_allocated"`
	ToLateFee       decimal.Decimal `json:"to_late_fee"`
	ToRent          decimal.Decimal `json:"to_rent"`
}

// PaymentResponse is a payment with its allocations. Allocation is set when
// the request ran the waterfall.
type PaymentResponse struct {
	ID              uuid.UUID                `json:"id"`
	TenantID        uuid.UUID                `json:"tenant_id"`
	PropertyID      uuid.UUID                `json:"property_id"`
	Amount          decimal.Decimal          `json:"amount"`
	PaymentDate     string                   `json:"payment_date"`
	Notes           string                   `json:"notes,omitempty"`
	AllocatedAmount decimal.Decimal          `json:"allocated_amount"`
	UnappliedAmount decimal.Decimal          `json:"unapplied_amount"`
	Version         int                      `json:"version"`
	Allocations     []AllocationResponse     `json:"allocations"`
	Allocation      *ledger.AllocationResult `json:"allocation,omitempty"`
	Replayed        bool                     `json:"replayed,omitempty"`
}

// ToPaymentResponse converts a payment and its stored allocations
func ToPaymentResponse(p *ledger.Payment, allocs []*ledger.PaymentAllocation) PaymentResponse {
	resp := PaymentResponse{
		ID:              p.ID,
		TenantID:        p.TenantID,
		PropertyID:      p.PropertyID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate.String(),
		Notes:           p.Notes,
		AllocatedAmount: p.AllocatedAmount,
		UnappliedAmount: p.UnappliedAmount,
		Version:         p.Version,
		Allocations:     make([]AllocationResponse, 0, len(allocs)),
	}
	for _, a := range allocs {
		resp.Allocations = append(resp.Allocations, AllocationResponse{
			ID:              a.ID,
			RentPeriodID:    a.RentPeriodID,
			AmountAllocated: a.AmountAllocated,
			ToLateFee:       a.ToLateFee,
			ToRent:          a.ToRent,
		})
	}
	return resp
}

// =============================================================================
// Report DTOs
// =============================================================================

// ArrearsQuery selects the arrears rollup of one tenant
type ArrearsQuery struct {
	AsOf     string `form:"as_of" binding:"omitempty,datetime=2006-01-02"`
	Generate bool   `form:"generate"`
}

// CollectionsQuery selects a collections report
type CollectionsQuery struct {
	Start      string     `form:"start" binding:"required,datetime=2006-01-02"`
	End        string     `form:"end" binding:"required,datetime=2006-01-02"`
	// Tenant and property filters are parsed by the HTTP layer
	TenantID   *uuid.UUID `form:"-"`
	PropertyID *uuid.UUID `form:"-"`
}

// toDomain parses the range into a domain query
func (q CollectionsQuery) toDomain() (ledger.CollectionQuery, error) {
	start, err := parseDate("start", q.Start)
	if err != nil {
		return ledger.CollectionQuery{}, err
	}
	end, err := parseDate("end", q.End)
	if err != nil {
		return ledger.CollectionQuery{}, err
	}
	return ledger.CollectionQuery{Start: start, End: end, TenantID: q.TenantID, PropertyID: q.PropertyID}, nil
}

// ArrearsResponse wraps the rollup with cache provenance
type ArrearsResponse struct {
	ledger.TenantArrears
	Cached bool `json:"cached"`
}

// =============================================================================
// Parsing helpers
// =============================================================================

func parseDate(field, s string) (valueobject.Date, error) {
	d, err := valueobject.ParseDate(s)
	if err != nil {
		return valueobject.Date{}, invalidInput("%s must be a YYYY-MM-DD date", field)
	}
	return d, nil
}

func parseOptionalDate(field, s string) (valueobject.Date, error) {
	if s == "" {
		return valueobject.Date{}, nil
	}
	return parseDate(field, s)
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalidInput("%s must be a decimal amount", field)
	}
	return d, nil
}
