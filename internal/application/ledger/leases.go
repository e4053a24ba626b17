package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CreateLease creates a lease, active unless the request asks for a draft
func (s *Service) CreateLease(ctx context.Context, req CreateLeaseRequest) (*LeaseResponse, error) {
	cadence, err := ledger.ParseCadence(req.Cadence)
	if err != nil {
		return nil, err
	}
	rent, err := parseAmount("rent_amount", req.RentAmount)
	if err != nil {
		return nil, err
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	lease, err := ledger.NewLease(req.TenantID, req.PropertyID, rent, cadence, start, end)
	if err != nil {
		return nil, err
	}
	if err := s.leases.Save(ctx, lease); err != nil {
		return nil, fmt.Errorf("failed to save lease: %w", err)
	}
	if !req.Draft {
		if err := lease.Activate(); err != nil {
			return nil, err
		}
		if err := s.leases.Save(ctx, lease); err != nil {
			return nil, fmt.Errorf("failed to activate lease: %w", err)
		}
	}

	s.log(ctx).Info("Lease created",
		zap.String("lease_id", lease.ID.String()),
		zap.String("tenant_id", lease.TenantID.String()),
		zap.String("cadence", lease.Cadence.String()),
	)
	resp := ToLeaseResponse(lease)
	return &resp, nil
}

// GetLease returns a lease by ID
func (s *Service) GetLease(ctx context.Context, id uuid.UUID) (*LeaseResponse, error) {
	lease, err := s.leases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToLeaseResponse(lease)
	return &resp, nil
}

// ListLeases returns a page of leases with the total match count
func (s *Service) ListLeases(ctx context.Context, f ListLeasesFilter) (shared.Paginated[LeaseResponse], error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "start_date"
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.TenantID != nil {
		filter = filter.Where("tenant_id", *f.TenantID)
	}
	if f.PropertyID != nil {
		filter = filter.Where("property_id", *f.PropertyID)
	}
	if f.Status != "" {
		filter = filter.Where("status", f.Status)
	}

	var page shared.Paginated[LeaseResponse]
	leases, err := s.leases.FindAll(ctx, filter)
	if err != nil {
		return page, err
	}
	total, err := s.leases.Count(ctx, filter)
	if err != nil {
		return page, err
	}

	items := make([]LeaseResponse, 0, len(leases))
	for i := range leases {
		items = append(items, ToLeaseResponse(&leases[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// ActivateLease moves a pending lease to active
func (s *Service) ActivateLease(ctx context.Context, id uuid.UUID) (*LeaseResponse, error) {
	return s.transitionLease(ctx, id, (*ledger.Lease).Activate)
}

// ExpireLease ends an active lease
func (s *Service) ExpireLease(ctx context.Context, id uuid.UUID) (*LeaseResponse, error) {
	return s.transitionLease(ctx, id, (*ledger.Lease).Expire)
}

// RefreshLeaseStatus applies the date-driven status transitions as of asOf:
// a pending lease whose start has come is activated and an active lease past
// its end date is expired. The lease is saved only when its status moved.
func (s *Service) RefreshLeaseStatus(ctx context.Context, id uuid.UUID, asOf valueobject.Date) (*LeaseResponse, error) {
	return s.transitionLease(ctx, id, func(l *ledger.Lease) error {
		if l.RefreshStatus(asOf) {
			s.log(ctx).Info("Lease status refreshed",
				zap.String("lease_id", l.ID.String()),
				zap.String("status", l.Status.String()),
				zap.String("as_of", asOf.String()),
			)
		}
		return nil
	})
}

func (s *Service) transitionLease(ctx context.Context, id uuid.UUID, apply func(*ledger.Lease) error) (*LeaseResponse, error) {
	lease, err := s.leases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := lease.Version
	if err := apply(lease); err != nil {
		return nil, err
	}
	if lease.Version != before {
		if err := s.leases.Save(ctx, lease); err != nil {
			return nil, fmt.Errorf("failed to save lease: %w", err)
		}
	}
	resp := ToLeaseResponse(lease)
	return &resp, nil
}

// GeneratePeriods stores the lease's periods up to horizon and returns the
// ones created by this call.
func (s *Service) GeneratePeriods(ctx context.Context, leaseID uuid.UUID, horizon valueobject.Date) ([]PeriodResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "generate_periods")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrLeaseID, leaseID.String(), telemetry.SpanAttrAsOf, horizon.String())

	lease, err := s.leases.FindByID(ctx, leaseID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.generate(ctx, lease, horizon)
}

// GenerateForTenant generates periods up to horizon for the tenant's current lease
func (s *Service) GenerateForTenant(ctx context.Context, tenantID uuid.UUID, horizon valueobject.Date) ([]PeriodResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "generate_periods")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrTenantID, tenantID.String(), telemetry.SpanAttrAsOf, horizon.String())

	lease, err := s.repo.GetLease(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.generate(ctx, lease, horizon)
}

func (s *Service) generate(ctx context.Context, lease *ledger.Lease, horizon valueobject.Date) ([]PeriodResponse, error) {
	if horizon.IsZero() {
		return nil, invalidInput("horizon is required")
	}

	var created []*ledger.RentPeriod
	err := s.uow.Within(ctx, func(repo ledger.LedgerRepository) error {
		var err error
		created, err = s.generateThrough(ctx, repo, lease, horizon)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPeriodsGenerated(ctx, len(created))
	if len(created) > 0 {
		s.invalidateArrears(ctx, lease.TenantID)
	}
	s.log(ctx).Info("Rent periods generated",
		zap.String("lease_id", lease.ID.String()),
		zap.String("horizon", horizon.String()),
		zap.Int("created", len(created)),
	)

	out := make([]PeriodResponse, 0, len(created))
	for _, p := range created {
		out = append(out, ToPeriodResponse(p, p.Status))
	}
	return out, nil
}

// ListTenantPeriods returns the tenant's periods with fees and statuses
// evaluated as of asOf. Nothing is written.
func (s *Service) ListTenantPeriods(ctx context.Context, tenantID uuid.UUID, asOf valueobject.Date) ([]PeriodResponse, error) {
	if _, err := s.repo.GetLease(ctx, tenantID); err != nil {
		return nil, err
	}
	periods, err := s.repo.ListPeriodsForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	policy := s.Policy()
	out := make([]PeriodResponse, 0, len(periods))
	for _, stored := range periods {
		p := *stored
		if _, err := policy.ApplyLateFeeIfDue(&p, asOf); err != nil {
			return nil, err
		}
		out = append(out, ToPeriodResponse(&p, p.StatusAsOf(asOf, policy.GraceDays())))
	}
	return out, nil
}

// WaiveLateFee waives the late fee of a period. Waiving twice is a no-op.
func (s *Service) WaiveLateFee(ctx context.Context, periodID uuid.UUID, asOf valueobject.Date) (*PeriodResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "waive_late_fee")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPeriodID, periodID.String())

	var period *ledger.RentPeriod
	var changed bool
	err := s.withRetry(ctx, "waive_late_fee", func() error {
		return s.uow.Within(ctx, func(repo ledger.LedgerRepository) error {
			p, err := repo.FindPeriod(ctx, periodID)
			if err != nil {
				return err
			}
			wasWaived := p.LateFeeWaived
			if err := s.Policy().WaiveLateFee(p, asOf); err != nil {
				return err
			}
			if !wasWaived {
				if err := repo.UpsertPeriod(ctx, p); err != nil {
					return err
				}
			}
			period, changed = p, !wasWaived
			return nil
		})
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if changed {
		s.metrics.RecordFeeWaived(ctx)
		s.invalidateArrears(ctx, period.TenantID)
		s.log(ctx).Info("Late fee waived",
			zap.String("period_id", period.ID.String()),
			zap.String("tenant_id", period.TenantID.String()),
		)
	}
	resp := ToPeriodResponse(period, period.StatusAsOf(asOf, s.Policy().GraceDays()))
	return &resp, nil
}

// OverridePeriodDueDate moves the date a period counts as due from. A fee
// attached under the old date is released while none of it is collected, so
// it is assessed again from the new one. A zero dueDate clears the override.
func (s *Service) OverridePeriodDueDate(ctx context.Context, periodID uuid.UUID, dueDate, asOf valueobject.Date) (*PeriodResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "override_due_date")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPeriodID, periodID.String())

	var period *ledger.RentPeriod
	err := s.withRetry(ctx, "override_due_date", func() error {
		return s.uow.Within(ctx, func(repo ledger.LedgerRepository) error {
			p, err := repo.FindPeriod(ctx, periodID)
			if err != nil {
				return err
			}
			p.OverrideDueDate(dueDate)
			p.ReleaseUncollectedLateFee()
			p.RefreshStatus(asOf, s.Policy().GraceDays())
			if err := repo.UpsertPeriod(ctx, p); err != nil {
				return err
			}
			period = p
			return nil
		})
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.invalidateArrears(ctx, period.TenantID)
	s.log(ctx).Info("Period due date overridden",
		zap.String("period_id", period.ID.String()),
		zap.String("tenant_id", period.TenantID.String()),
		zap.String("effective_due_date", period.EffectiveDueDate().String()),
	)
	resp := ToPeriodResponse(period, period.StatusAsOf(asOf, s.Policy().GraceDays()))
	return &resp, nil
}
