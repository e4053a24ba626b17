package router

import (
	"github.com/rentdesk/backend/internal/interfaces/http/handler"
)

// LedgerHandlers are the handlers behind the ledger API
type LedgerHandlers struct {
	Leases   *handler.LeaseHandler
	Payments *handler.PaymentHandler
	Reports  *handler.ReportHandler
	System   *handler.SystemHandler
}

// LedgerGroups builds the route groups of the ledger API
func LedgerGroups(h LedgerHandlers) []*DomainGroup {
	leases := NewDomainGroup("leases", "/leases").
		POST("", h.Leases.Create).
		GET("", h.Leases.List).
		GET("/:id", h.Leases.Get).
		POST("/:id/activate", h.Leases.Activate).
		POST("/:id/expire", h.Leases.Expire).
		POST("/:id/refresh-status", h.Leases.RefreshStatus).
		POST("/:id/periods/generate", h.Leases.GeneratePeriods)

	tenants := NewDomainGroup("tenants", "/tenants/:tenant_id").
		GET("/periods", h.Leases.ListTenantPeriods).
		GET("/arrears", h.Reports.GetArrears)

	payments := NewDomainGroup("payments", "/payments").
		POST("", h.Payments.Create).
		GET("/:id", h.Payments.Get).
		PUT("/:id", h.Payments.Edit).
		POST("/:id/reallocate", h.Payments.Reallocate)

	periods := NewDomainGroup("periods", "/periods").
		POST("/:id/waive-late-fee", h.Payments.WaiveLateFee).
		PUT("/:id/due-date", h.Payments.OverrideDueDate)

	reports := NewDomainGroup("reports", "/reports")
	reports.Group("collections", "/collections").
		GET("", h.Reports.GetCollections).
		GET("/export", h.Reports.ExportCollections)

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo)

	return []*DomainGroup{leases, tenants, payments, periods, reports, system}
}
