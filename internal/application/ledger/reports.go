package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/rentdesk/backend/internal/infrastructure/export"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// GetArrears returns what the tenant owes as of asOf. With generate set,
// periods due by asOf are materialised first. Results are cached per
// tenant and date until the tenant's ledger changes.
func (s *Service) GetArrears(ctx context.Context, tenantID uuid.UUID, asOf valueobject.Date, generate bool) (*ArrearsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "get_arrears")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrAsOf, asOf.String(),
	)

	if asOf.IsZero() {
		return nil, invalidInput("as_of is required")
	}

	if generate {
		if err := s.generateDueForTenant(ctx, tenantID, asOf); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, tenantID, asOf)
		if err != nil {
			s.log(ctx).Warn("Arrears cache read failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		}
		s.metrics.RecordCacheLookup(ctx, ok)
		telemetry.SetAttributes(span, telemetry.SpanAttrCacheHit, ok)
		if ok {
			return &ArrearsResponse{TenantArrears: *cached, Cached: true}, nil
		}
	}

	arrears, err := s.aggregator.CalculateTenantOwedAmount(ctx, tenantID, asOf)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, arrears, s.cacheTTL); err != nil {
			s.log(ctx).Warn("Arrears cache write failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		}
	}
	return &ArrearsResponse{TenantArrears: *arrears}, nil
}

func (s *Service) generateDueForTenant(ctx context.Context, tenantID uuid.UUID, asOf valueobject.Date) error {
	var generated int
	err := s.uow.Within(ctx, func(repo ledger.LedgerRepository) error {
		lease, err := repo.GetLease(ctx, tenantID)
		if err != nil {
			return err
		}
		generated, err = s.generateDue(ctx, repo, lease, asOf)
		return err
	})
	if err != nil {
		return err
	}
	if generated > 0 {
		s.metrics.RecordPeriodsGenerated(ctx, generated)
		s.invalidateArrears(ctx, tenantID)
	}
	return nil
}

// GetCollections returns cash collected in the query's date range
func (s *Service) GetCollections(ctx context.Context, q CollectionsQuery) (*ledger.CollectionSummary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "get_collections")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrRangeStart, q.Start, telemetry.SpanAttrRangeEnd, q.End)

	query, err := q.toDomain()
	if err != nil {
		return nil, err
	}
	summary, err := s.aggregator.GetCollectedTotal(ctx, query)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return summary, nil
}

// ExportCollections renders the collections report and its payments as an
// XLSX workbook. It returns the file bytes and a suggested file name.
func (s *Service) ExportCollections(ctx context.Context, q CollectionsQuery) ([]byte, string, error) {
	summary, err := s.GetCollections(ctx, q)
	if err != nil {
		return nil, "", err
	}

	query, _ := q.toDomain()
	payments, err := s.repo.ListPaymentsInRange(ctx, ledger.PaymentRangeFilter{
		Start:      query.Start,
		End:        query.End,
		TenantID:   query.TenantID,
		PropertyID: query.PropertyID,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list payments: %w", err)
	}

	data, err := export.CollectionsWorkbook(summary, payments)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("collections_%s_%s.xlsx", query.Start, query.End)
	return data, name, nil
}
