package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	ledgerapp "github.com/rentdesk/backend/internal/application/ledger"
	"github.com/rentdesk/backend/internal/infrastructure/export"
)

// ReportHandler serves arrears and collections reports
type ReportHandler struct {
	BaseHandler
	svc   *ledgerapp.Service
	clock Clock
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(svc *ledgerapp.Service, clock Clock) *ReportHandler {
	if clock == nil {
		clock = UTCClock
	}
	return &ReportHandler{svc: svc, clock: clock}
}

// GetArrears godoc
// @ID           getTenantArrears
// @Summary      Tenant arrears
// @Description  Total owed, outstanding late fees and missed periods as of a date.
// @Description  With generate=true, periods due by as_of are materialized first.
// @Tags         tenants
// @Produce      json
// @Param        tenant_id path  string true  "Tenant ID" format(uuid)
// @Param        as_of     query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Param        generate  query bool   false "Generate due periods before aggregating"
// @Success      200 {object} APIResponse[ledgerapp.ArrearsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /tenants/{tenant_id}/arrears [get]
func (h *ReportHandler) GetArrears(c *gin.Context) {
	tenantID, ok := h.parseUUIDParam(c, "tenant_id")
	if !ok {
		return
	}

	var q ledgerapp.ArrearsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}
	asOf, ok := h.parseDateOr(c, "as_of", q.AsOf, h.clock)
	if !ok {
		return
	}

	arrears, err := h.svc.GetArrears(c.Request.Context(), tenantID, asOf, q.Generate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, arrears)
}

// GetCollections godoc
// @ID           getCollections
// @Summary      Collections report
// @Description  Cash received with payment_date in [start, end], broken down by tenant and property
// @Tags         reports
// @Produce      json
// @Param        start       query string true  "Range start (YYYY-MM-DD)"
// @Param        end         query string true  "Range end (YYYY-MM-DD), inclusive"
// @Param        tenant_id   query string false "Tenant filter" format(uuid)
// @Param        property_id query string false "Property filter" format(uuid)
// @Success      200 {object} APIResponse[ledger.CollectionSummary]
// @Failure      400 {object} ErrorResponse
// @Router       /reports/collections [get]
func (h *ReportHandler) GetCollections(c *gin.Context) {
	var q ledgerapp.CollectionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}
	if !h.bindFilterIDs(c, &q.TenantID, &q.PropertyID) {
		return
	}

	summary, err := h.svc.GetCollections(c.Request.Context(), q)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// ExportCollections godoc
// @ID           exportCollections
// @Summary      Export collections as XLSX
// @Description  Workbook with a summary sheet and one row per payment in the range
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start       query string true  "Range start (YYYY-MM-DD)"
// @Param        end         query string true  "Range end (YYYY-MM-DD), inclusive"
// @Param        tenant_id   query string false "Tenant filter" format(uuid)
// @Param        property_id query string false "Property filter" format(uuid)
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponse
// @Router       /reports/collections/export [get]
func (h *ReportHandler) ExportCollections(c *gin.Context) {
	var q ledgerapp.CollectionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}
	if !h.bindFilterIDs(c, &q.TenantID, &q.PropertyID) {
		return
	}

	data, name, err := h.svc.ExportCollections(c.Request.Context(), q)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, export.ContentTypeXLSX, data)
}
