package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/rentdesk/backend/internal/application/ledger"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// LeaseHandler handles lease and rent period endpoints
type LeaseHandler struct {
	BaseHandler
	svc   *ledgerapp.Service
	clock Clock
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(svc *ledgerapp.Service, clock Clock) *LeaseHandler {
	if clock == nil {
		clock = UTCClock
	}
	return &LeaseHandler{svc: svc, clock: clock}
}

// Create godoc
// @ID           createLease
// @Summary      Create a lease
// @Description  Create a lease for a tenant. The lease is active unless draft is set.
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.CreateLeaseRequest true "Lease creation request"
// @Success      201 {object} APIResponse[ledgerapp.LeaseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /leases [post]
func (h *LeaseHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	lease, err := h.svc.CreateLease(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, lease)
}

// Get godoc
// @ID           getLease
// @Summary      Get lease by ID
// @Tags         leases
// @Produce      json
// @Param        id path string true "Lease ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.LeaseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /leases/{id} [get]
func (h *LeaseHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	lease, err := h.svc.GetLease(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, lease)
}

// List godoc
// @ID           listLeases
// @Summary      List leases
// @Description  Paginated lease list, filterable by tenant, property and status
// @Tags         leases
// @Produce      json
// @Param        tenant_id   query string false "Tenant ID" format(uuid)
// @Param        property_id query string false "Property ID" format(uuid)
// @Param        status      query string false "Lease status" Enums(pending, active, expired)
// @Param        page        query int    false "Page number" default(1)
// @Param        page_size   query int    false "Page size" default(20) maximum(100)
// @Param        order_by    query string false "Sort column" default(start_date)
// @Param        order_dir   query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]ledgerapp.LeaseResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /leases [get]
func (h *LeaseHandler) List(c *gin.Context) {
	var filter ledgerapp.ListLeasesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if !h.bindFilterIDs(c, &filter.TenantID, &filter.PropertyID) {
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	page, err := h.svc.ListLeases(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Activate godoc
// @ID           activateLease
// @Summary      Activate a pending lease
// @Tags         leases
// @Produce      json
// @Param        id path string true "Lease ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.LeaseResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /leases/{id}/activate [post]
func (h *LeaseHandler) Activate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	lease, err := h.svc.ActivateLease(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, lease)
}

// Expire godoc
// @ID           expireLease
// @Summary      Expire an active lease
// @Tags         leases
// @Produce      json
// @Param        id path string true "Lease ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.LeaseResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /leases/{id}/expire [post]
func (h *LeaseHandler) Expire(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	lease, err := h.svc.ExpireLease(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, lease)
}

// RefreshStatus godoc
// @ID           refreshLeaseStatus
// @Summary      Apply date-driven lease transitions
// @Description  Activates a pending lease whose start date has come and expires an active lease past its end date. as_of defaults to today.
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        id      path string true "Lease ID" format(uuid)
// @Param        request body ledgerapp.RefreshLeaseStatusRequest false "Optional as-of date"
// @Success      200 {object} APIResponse[ledgerapp.LeaseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /leases/{id}/refresh-status [post]
func (h *LeaseHandler) RefreshStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ledgerapp.RefreshLeaseStatusRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.ValidationError(c, err)
			return
		}
	}
	asOf, ok := h.parseDateOr(c, "as_of", req.AsOf, h.clock)
	if !ok {
		return
	}

	lease, err := h.svc.RefreshLeaseStatus(c.Request.Context(), id, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, lease)
}

// GeneratePeriods godoc
// @ID           generateLeasePeriods
// @Summary      Generate rent periods
// @Description  Materialize the lease's rent periods due on or before the horizon. Existing periods are left alone.
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        id      path string true "Lease ID" format(uuid)
// @Param        request body ledgerapp.GeneratePeriodsRequest true "Generation horizon"
// @Success      200 {object} APIResponse[[]ledgerapp.PeriodResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /leases/{id}/periods/generate [post]
func (h *LeaseHandler) GeneratePeriods(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ledgerapp.GeneratePeriodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	horizon, err := valueobject.ParseDate(req.Horizon)
	if err != nil {
		h.BadRequest(c, "horizon must be a YYYY-MM-DD date")
		return
	}

	periods, err := h.svc.GeneratePeriods(c.Request.Context(), id, horizon)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, periods)
}

// ListTenantPeriods godoc
// @ID           listTenantPeriods
// @Summary      List a tenant's rent periods
// @Description  Ledger periods with status and late fees derived as of the given date
// @Tags         tenants
// @Produce      json
// @Param        tenant_id path  string true  "Tenant ID" format(uuid)
// @Param        as_of     query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} APIResponse[[]ledgerapp.PeriodResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /tenants/{tenant_id}/periods [get]
func (h *LeaseHandler) ListTenantPeriods(c *gin.Context) {
	tenantID, ok := h.parseUUIDParam(c, "tenant_id")
	if !ok {
		return
	}
	asOf, ok := h.parseDateOr(c, "as_of", c.Query("as_of"), h.clock)
	if !ok {
		return
	}

	periods, err := h.svc.ListTenantPeriods(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, periods)
}
