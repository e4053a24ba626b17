package models

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LeaseModel is the persistence model for the Lease aggregate
type LeaseModel struct {
	AggregateModel
	TenantID   uuid.UUID          `gorm:"type:uuid;not null;index:idx_leases_tenant_start,priority:1"`
	PropertyID uuid.UUID          `gorm:"type:uuid;not null;index"`
	RentAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Cadence    ledger.Cadence     `gorm:"type:varchar(16);not null"`
	StartDate  valueobject.Date   `gorm:"type:date;not null;index:idx_leases_tenant_start,priority:2"`
	EndDate    valueobject.Date   `gorm:"type:date"`
	Status     ledger.LeaseStatus `gorm:"type:varchar(16);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the persistence model to a domain Lease
func (m *LeaseModel) ToDomain() *ledger.Lease {
	return &ledger.Lease{
		BaseAggregateRoot: m.ToAggregateRoot(),
		TenantID:          m.TenantID,
		PropertyID:        m.PropertyID,
		RentAmount:        m.RentAmount,
		Cadence:           m.Cadence,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Status:            m.Status,
	}
}

// FromDomain populates the model from a domain Lease
func (m *LeaseModel) FromDomain(l *ledger.Lease) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.TenantID = l.TenantID
	m.PropertyID = l.PropertyID
	m.RentAmount = l.RentAmount
	m.Cadence = l.Cadence
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.Status = l.Status
}

// RentPeriodModel is the persistence model for a rent period. One row per
// (lease, scheduled due date) keeps generation idempotent.
type RentPeriodModel struct {
	AggregateModel
	TenantID        uuid.UUID           `gorm:"type:uuid;not null;index:idx_rent_periods_tenant_due,priority:1"`
	PropertyID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	LeaseID         uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_rent_periods_lease_due,priority:1"`
	Cadence         ledger.Cadence      `gorm:"type:varchar(16);not null"`
	PeriodDueDate   valueobject.Date    `gorm:"type:date;not null;uniqueIndex:idx_rent_periods_lease_due,priority:2;index:idx_rent_periods_tenant_due,priority:2"`
	DueDateOverride valueobject.Date    `gorm:"type:date"`
	RentAmount      decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	AmountPaid      decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	LateFeeApplied  decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	LateFeePaid     decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	LateFeeWaived   bool                `gorm:"not null;default:false"`
	Status          ledger.PeriodStatus `gorm:"type:varchar(16);not null;index"`
}

// TableName returns the table name for GORM
func (RentPeriodModel) TableName() string {
	return "rent_periods"
}

// ToDomain converts the persistence model to a domain RentPeriod
func (m *RentPeriodModel) ToDomain() *ledger.RentPeriod {
	return &ledger.RentPeriod{
		BaseAggregateRoot: m.ToAggregateRoot(),
		TenantID:          m.TenantID,
		PropertyID:        m.PropertyID,
		LeaseID:           m.LeaseID,
		Cadence:           m.Cadence,
		PeriodDueDate:     m.PeriodDueDate,
		DueDateOverride:   m.DueDateOverride,
		RentAmount:        m.RentAmount,
		AmountPaid:        m.AmountPaid,
		LateFeeApplied:    m.LateFeeApplied,
		LateFeePaid:       m.LateFeePaid,
		LateFeeWaived:     m.LateFeeWaived,
		Status:            m.Status,
	}
}

// FromDomain populates the model from a domain RentPeriod
func (m *RentPeriodModel) FromDomain(p *ledger.RentPeriod) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.TenantID = p.TenantID
	m.PropertyID = p.PropertyID
	m.LeaseID = p.LeaseID
	m.Cadence = p.Cadence
	m.PeriodDueDate = p.PeriodDueDate
	m.DueDateOverride = p.DueDateOverride
	m.RentAmount = p.RentAmount
	m.AmountPaid = p.AmountPaid
	m.LateFeeApplied = p.LateFeeApplied
	m.LateFeePaid = p.LateFeePaid
	m.LateFeeWaived = p.LateFeeWaived
	m.Status = p.Status
}

// RentPeriodModelFromDomain creates a model from a domain RentPeriod
func RentPeriodModelFromDomain(p *ledger.RentPeriod) *RentPeriodModel {
	m := &RentPeriodModel{}
	m.FromDomain(p)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate
type PaymentModel struct {
	AggregateModel
	TenantID        uuid.UUID        `gorm:"type:uuid;not null;index:idx_payments_tenant_date,priority:1"`
	PropertyID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	PaymentDate     valueobject.Date `gorm:"type:date;not null;index:idx_payments_tenant_date,priority:2"`
	Notes           string           `gorm:"type:text"`
	AllocatedAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	UnappliedAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		BaseAggregateRoot: m.ToAggregateRoot(),
		TenantID:          m.TenantID,
		PropertyID:        m.PropertyID,
		Amount:            m.Amount,
		PaymentDate:       m.PaymentDate,
		Notes:             m.Notes,
		AllocatedAmount:   m.AllocatedAmount,
		UnappliedAmount:   m.UnappliedAmount,
	}
}

// FromDomain populates the model from a domain Payment
func (m *PaymentModel) FromDomain(p *ledger.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.TenantID = p.TenantID
	m.PropertyID = p.PropertyID
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.Notes = p.Notes
	m.AllocatedAmount = p.AllocatedAmount
	m.UnappliedAmount = p.UnappliedAmount
}

// PaymentAllocationModel is the join row between a payment and a period
type PaymentAllocationModel struct {
	BaseModel
	PaymentID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	RentPeriodID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountAllocated decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ToLateFee       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ToRent          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PaymentAllocationModel) TableName() string {
	return "payment_allocations"
}

// ToDomain converts the persistence model to a domain PaymentAllocation
func (m *PaymentAllocationModel) ToDomain() *ledger.PaymentAllocation {
	return &ledger.PaymentAllocation{
		BaseEntity:      m.BaseModel.ToDomain(),
		PaymentID:       m.PaymentID,
		RentPeriodID:    m.RentPeriodID,
		AmountAllocated: m.AmountAllocated,
		ToLateFee:       m.ToLateFee,
		ToRent:          m.ToRent,
	}
}

// PaymentAllocationModelFromDomain creates a model from a domain PaymentAllocation
func PaymentAllocationModelFromDomain(a *ledger.PaymentAllocation) *PaymentAllocationModel {
	m := &PaymentAllocationModel{
		PaymentID:       a.PaymentID,
		RentPeriodID:    a.RentPeriodID,
		AmountAllocated: a.AmountAllocated,
		ToLateFee:       a.ToLateFee,
		ToRent:          a.ToRent,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// AllModels returns every ledger model, in dependency order, for AutoMigrate
func AllModels() []any {
	return []any{
		&LeaseModel{},
		&RentPeriodModel{},
		&PaymentModel{},
		&PaymentAllocationModel{},
	}
}
