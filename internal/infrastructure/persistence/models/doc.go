// Package models contains GORM persistence models for the rent ledger tables.
// Domain types in internal/domain/ledger carry no ORM tags; each model here
// converts to and from its domain counterpart with ToDomain/FromDomain.
//
// Tables: leases, rent_periods, payments, payment_allocations. The SQL
// migrations under migrations/ are authoritative for postgres; AllModels is
// used with AutoMigrate for sqlite.
package models
