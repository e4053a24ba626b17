// Package ledger orchestrates the rent ledger use cases: leases, lazy period
// generation, payment allocation with retry, and the arrears and collections
// reports.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrIdempotencyInProgress is returned while another request holding the
// same Idempotency-Key is still being processed.
var ErrIdempotencyInProgress = shared.NewDomainError("IDEMPOTENCY_IN_PROGRESS",
	"A request with this Idempotency-Key is still being processed")

// ArrearsCache stores arrears rollups per tenant and as-of date
type ArrearsCache interface {
	Get(ctx context.Context, tenantID uuid.UUID, asOf valueobject.Date) (*ledger.TenantArrears, bool, error)
	Set(ctx context.Context, arrears *ledger.TenantArrears, ttl time.Duration) error
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// Service implements the ledger use cases on top of the domain engine
type Service struct {
	uow        ledger.LedgerUnitOfWork
	repo       ledger.LedgerRepository
	leases     shared.Repository[ledger.Lease]
	engine     *ledger.AllocationEngine
	aggregator *ledger.ArrearsAggregator

	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	cache          ArrearsCache
	cacheTTL       time.Duration
	maxRetries     int
	metrics        *telemetry.LedgerMetrics
	logger         *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithIdempotencyStore enables Idempotency-Key handling on RecordPayment
func WithIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) Option {
	return func(s *Service) {
		s.idempotency = store
		if ttl > 0 {
			s.idempotencyTTL = ttl
		}
	}
}

// WithArrearsCache caches arrears rollups for ttl
func WithArrearsCache(cache ArrearsCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithMaxRetries bounds attempts of an allocation that keeps conflicting
func WithMaxRetries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithMetrics records ledger instruments
func WithMetrics(m *telemetry.LedgerMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates the ledger service. repo serves reads outside a
// transaction; writes go through uow.
func NewService(
	uow ledger.LedgerUnitOfWork,
	repo ledger.LedgerRepository,
	leases shared.Repository[ledger.Lease],
	engine *ledger.AllocationEngine,
	opts ...Option,
) *Service {
	s := &Service{
		uow:            uow,
		repo:           repo,
		leases:         leases,
		engine:         engine,
		aggregator:     ledger.NewArrearsAggregator(repo, engine.Policy()),
		idempotencyTTL: shared.DefaultIdempotencyConfig().TTL,
		cacheTTL:       5 * time.Minute,
		maxRetries:     3,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the late fee policy in force
func (s *Service) Policy() *ledger.LateFeePolicy {
	return s.engine.Policy()
}

func (s *Service) log(ctx context.Context) *logger.ContextLogger {
	return logger.WithLogger(ctx, s.logger)
}

func isRetryable(err error) bool {
	return ledger.IsRetryable(err) || errors.Is(err, shared.ErrConcurrencyConflict)
}

// withRetry runs fn until it succeeds, fails for a non-retryable reason, or
// maxRetries attempts have all conflicted.
func (s *Service) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		s.metrics.RecordConflict(ctx)
		s.log(ctx).Warn("Ledger write conflicted, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return ledger.AllocationConflictError(fmt.Sprintf("%s gave up after %d attempts: %v", op, s.maxRetries, err))
}

// generateThrough stores the lease's missing periods up to horizon and
// returns them. Rows another writer inserted first are left untouched.
func (s *Service) generateThrough(ctx context.Context, repo ledger.LedgerRepository, lease *ledger.Lease, horizon valueobject.Date) ([]*ledger.RentPeriod, error) {
	existing, err := repo.ListPeriodsForLease(ctx, lease.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lease periods: %w", err)
	}
	created, err := ledger.GeneratePeriods(lease, horizon, existing)
	if err != nil {
		return nil, err
	}
	for _, p := range created {
		if err := repo.UpsertPeriod(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to store period %s: %w", p.PeriodDueDate, err)
		}
	}
	return created, nil
}

// generateDue materialises every period due on or before asOf
func (s *Service) generateDue(ctx context.Context, repo ledger.LedgerRepository, lease *ledger.Lease, asOf valueobject.Date) (int, error) {
	horizon, ok, err := ledger.CurrentDueDate(lease, asOf)
	if err != nil || !ok {
		return 0, err
	}
	created, err := s.generateThrough(ctx, repo, lease, horizon)
	return len(created), err
}

func (s *Service) invalidateArrears(ctx context.Context, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, tenantID); err != nil {
		s.log(ctx).Warn("Failed to invalidate arrears cache",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}

func invalidInput(format string, args ...any) *shared.DomainError {
	return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf(format, args...))
}
