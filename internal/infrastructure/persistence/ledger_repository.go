package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaseRepository is the generic CRUD repository for leases
type LeaseRepository = GormRepository[ledger.Lease, models.LeaseModel, *models.LeaseModel]

// PaymentRepository is the generic CRUD repository for payments
type PaymentRepository = GormRepository[ledger.Payment, models.PaymentModel, *models.PaymentModel]

// NewGormLeaseRepository creates the lease CRUD repository
func NewGormLeaseRepository(db *gorm.DB) *LeaseRepository {
	return NewGormRepository[ledger.Lease, models.LeaseModel](db, WithColumns("start_date", LeaseColumns...))
}

// NewGormPaymentRepository creates the payment CRUD repository
func NewGormPaymentRepository(db *gorm.DB) *PaymentRepository {
	return NewGormRepository[ledger.Payment, models.PaymentModel](db, WithColumns("payment_date", PaymentColumns...))
}

// LedgerRepositoryOption configures a GormLedgerRepository
type LedgerRepositoryOption func(*GormLedgerRepository)

// WithRowLocking makes period reads inside a transaction take row locks
// (SELECT ... FOR UPDATE). Only meaningful on postgres.
func WithRowLocking(enabled bool) LedgerRepositoryOption {
	return func(r *GormLedgerRepository) {
		r.rowLocking = enabled
	}
}

// GormLedgerRepository implements ledger.LedgerRepository using GORM
type GormLedgerRepository struct {
	db         *gorm.DB
	leases     *LeaseRepository
	payments   *PaymentRepository
	rowLocking bool
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB, opts ...LedgerRepositoryOption) *GormLedgerRepository {
	r := &GormLedgerRepository{
		db:       db,
		leases:   NewGormLeaseRepository(db),
		payments: NewGormPaymentRepository(db),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithTx returns a repository bound to tx with the same options
func (r *GormLedgerRepository) WithTx(tx *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:         tx,
		leases:     r.leases.WithTx(tx),
		payments:   r.payments.WithTx(tx),
		rowLocking: r.rowLocking,
	}
}

// Leases exposes lease CRUD on the same connection
func (r *GormLedgerRepository) Leases() *LeaseRepository {
	return r.leases
}

// Payments exposes payment CRUD on the same connection
func (r *GormLedgerRepository) Payments() *PaymentRepository {
	return r.payments
}

func (r *GormLedgerRepository) locked(query *gorm.DB) *gorm.DB {
	if r.rowLocking {
		return query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return query
}

// GetLease returns the tenant's lease with the latest start date
func (r *GormLedgerRepository) GetLease(ctx context.Context, tenantID uuid.UUID) (*ledger.Lease, error) {
	var model models.LeaseModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("start_date DESC").
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.TenantNotFoundError(tenantID)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListOutstandingPeriods returns unpaid, partial and overdue periods oldest first
func (r *GormLedgerRepository) ListOutstandingPeriods(ctx context.Context, tenantID uuid.UUID) ([]*ledger.RentPeriod, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status <> ?", tenantID, ledger.PeriodStatusPaid)
	return r.findPeriods(r.locked(query))
}

// ListPeriodsForTenant returns every period of the tenant oldest first
func (r *GormLedgerRepository) ListPeriodsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*ledger.RentPeriod, error) {
	return r.findPeriods(r.db.WithContext(ctx).Where("tenant_id = ?", tenantID))
}

// ListPeriodsForLease returns every period generated for the lease
func (r *GormLedgerRepository) ListPeriodsForLease(ctx context.Context, leaseID uuid.UUID) ([]*ledger.RentPeriod, error) {
	return r.findPeriods(r.db.WithContext(ctx).Where("lease_id = ?", leaseID))
}

func (r *GormLedgerRepository) findPeriods(query *gorm.DB) ([]*ledger.RentPeriod, error) {
	var rows []models.RentPeriodModel
	if err := query.Order("period_due_date ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*ledger.RentPeriod, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FindPeriod returns a period by ID
func (r *GormLedgerRepository) FindPeriod(ctx context.Context, id uuid.UUID) (*ledger.RentPeriod, error) {
	var model models.RentPeriodModel
	if err := r.locked(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.PeriodNotFoundError(id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// UpsertPeriod inserts a version 1 period, silently skipping an existing
// (lease_id, period_due_date) row, or updates a later version with an
// optimistic check on the stored version.
func (r *GormLedgerRepository) UpsertPeriod(ctx context.Context, period *ledger.RentPeriod) error {
	model := models.RentPeriodModelFromDomain(period)

	if period.Version <= 1 {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "lease_id"}, {Name: "period_due_date"}},
				DoNothing: true,
			}).
			Create(model).Error
	}

	result := r.db.WithContext(ctx).
		Model(&models.RentPeriodModel{}).
		Where("id = ? AND version = ?", period.ID, period.Version-1).
		Updates(map[string]any{
			"amount_paid":       model.AmountPaid,
			"late_fee_applied":  model.LateFeeApplied,
			"late_fee_paid":     model.LateFeePaid,
			"late_fee_waived":   model.LateFeeWaived,
			"due_date_override": model.DueDateOverride,
			"status":            model.Status,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.AllocationConflictError(fmt.Sprintf("rent period %s changed since version %d", period.ID, period.Version-1))
	}
	return nil
}

// InsertAllocation stores an allocation row
func (r *GormLedgerRepository) InsertAllocation(ctx context.Context, alloc *ledger.PaymentAllocation) error {
	return r.db.WithContext(ctx).Create(models.PaymentAllocationModelFromDomain(alloc)).Error
}

// DeleteAllocationsForPayment removes every allocation row of the payment
func (r *GormLedgerRepository) DeleteAllocationsForPayment(ctx context.Context, paymentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Delete(&models.PaymentAllocationModel{}).Error
}

// ListAllocationsForPayment returns the payment's allocations
func (r *GormLedgerRepository) ListAllocationsForPayment(ctx context.Context, paymentID uuid.UUID) ([]*ledger.PaymentAllocation, error) {
	return r.ListAllocationsForPayments(ctx, []uuid.UUID{paymentID})
}

// ListAllocationsForPayments returns allocations for a set of payments
func (r *GormLedgerRepository) ListAllocationsForPayments(ctx context.Context, paymentIDs []uuid.UUID) ([]*ledger.PaymentAllocation, error) {
	if len(paymentIDs) == 0 {
		return []*ledger.PaymentAllocation{}, nil
	}

	var rows []models.PaymentAllocationModel
	if err := r.db.WithContext(ctx).
		Where("payment_id IN ?", paymentIDs).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*ledger.PaymentAllocation, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FindPayment returns a payment by ID or shared.ErrNotFound
func (r *GormLedgerRepository) FindPayment(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	return r.payments.FindByID(ctx, id)
}

// SavePayment inserts or version-checks an update of the payment
func (r *GormLedgerRepository) SavePayment(ctx context.Context, payment *ledger.Payment) error {
	return r.payments.Save(ctx, payment)
}

// ListPaymentsInRange returns payments dated within the inclusive range
func (r *GormLedgerRepository) ListPaymentsInRange(ctx context.Context, filter ledger.PaymentRangeFilter) ([]*ledger.Payment, error) {
	query := r.db.WithContext(ctx).
		Where("payment_date >= ? AND payment_date <= ?", filter.Start, filter.End)
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}

	var rows []models.PaymentModel
	if err := query.Order("payment_date ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*ledger.Payment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// GormLedgerUnitOfWork implements ledger.LedgerUnitOfWork with gorm transactions
type GormLedgerUnitOfWork struct {
	db   *gorm.DB
	opts []LedgerRepositoryOption
}

// NewGormLedgerUnitOfWork creates a unit of work; opts apply to the
// repository handed to each transaction.
func NewGormLedgerUnitOfWork(db *gorm.DB, opts ...LedgerRepositoryOption) *GormLedgerUnitOfWork {
	return &GormLedgerUnitOfWork{db: db, opts: opts}
}

// NewLedgerUnitOfWork picks row locking from the database driver
func NewLedgerUnitOfWork(database *Database) *GormLedgerUnitOfWork {
	return NewGormLedgerUnitOfWork(database.DB, WithRowLocking(database.SupportsRowLocking()))
}

// Within runs fn in a transaction; an error from fn rolls it back
func (u *GormLedgerUnitOfWork) Within(ctx context.Context, fn func(repo ledger.LedgerRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormLedgerRepository(tx, u.opts...))
	})
}

// Compile-time interface checks
var (
	_ ledger.LedgerRepository           = (*GormLedgerRepository)(nil)
	_ ledger.LedgerUnitOfWork           = (*GormLedgerUnitOfWork)(nil)
	_ shared.Repository[ledger.Lease]   = (*LeaseRepository)(nil)
	_ shared.Repository[ledger.Payment] = (*PaymentRepository)(nil)
)
