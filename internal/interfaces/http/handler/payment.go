package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ledgerapp "github.com/rentdesk/backend/internal/application/ledger"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
)

// maxIdempotencyKeyLength bounds the Idempotency-Key header
const maxIdempotencyKeyLength = 255

// PaymentHandler handles payment recording, edits and late fee waivers
type PaymentHandler struct {
	BaseHandler
	svc   *ledgerapp.Service
	clock Clock
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(svc *ledgerapp.Service, clock Clock) *PaymentHandler {
	if clock == nil {
		clock = UTCClock
	}
	return &PaymentHandler{svc: svc, clock: clock}
}

// Create godoc
// @ID           createPayment
// @Summary      Record a payment
// @Description  Record a tenant payment and allocate it across outstanding periods, oldest first, late fee before rent.
// @Description  A repeated Idempotency-Key returns the original payment with status 200.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client supplied idempotency key"
// @Param        request body ledgerapp.RecordPaymentRequest true "Payment"
// @Success      201 {object} APIResponse[ledgerapp.PaymentResponse]
// @Success      200 {object} APIResponse[ledgerapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	key := c.GetHeader(middleware.HeaderIdempotencyKey)
	if len(key) > maxIdempotencyKeyLength {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Idempotency-Key is too long")
		return
	}

	var req ledgerapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	payment, err := h.svc.RecordPayment(c.Request.Context(), req, key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if payment.Replayed {
		h.Success(c, payment)
		return
	}
	h.Created(c, payment)
}

// Get godoc
// @ID           getPayment
// @Summary      Get payment by ID
// @Description  Payment with its current allocation lines
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.svc.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}

// Edit godoc
// @ID           editPayment
// @Summary      Edit a payment
// @Description  Change amount, date or notes. Amount or date changes reverse and re-run the allocation.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string true "Payment ID" format(uuid)
// @Param        request body ledgerapp.EditPaymentRequest true "Changed fields"
// @Success      200 {object} APIResponse[ledgerapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /payments/{id} [put]
func (h *PaymentHandler) Edit(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ledgerapp.EditPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	payment, err := h.svc.EditPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}

// Reallocate godoc
// @ID           reallocatePayment
// @Summary      Re-run a payment's allocation
// @Description  Reverse and re-apply the payment against the current ledger. Converges to the same result when nothing changed.
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /payments/{id}/reallocate [post]
func (h *PaymentHandler) Reallocate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.svc.ReallocatePayment(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}

// WaiveLateFee godoc
// @ID           waivePeriodLateFee
// @Summary      Waive a period's late fee
// @Description  Refused once any part of the fee has been collected. Waiving twice is a no-op.
// @Tags         periods
// @Accept       json
// @Produce      json
// @Param        id      path string true "Rent period ID" format(uuid)
// @Param        request body ledgerapp.WaiveLateFeeRequest false "Optional as-of date"
// @Success      200 {object} APIResponse[ledgerapp.PeriodResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /periods/{id}/waive-late-fee [post]
func (h *PaymentHandler) WaiveLateFee(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ledgerapp.WaiveLateFeeRequest
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

	period, err := h.svc.WaiveLateFee(c.Request.Context(), id, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, period)
}

// OverrideDueDate godoc
// @ID           overridePeriodDueDate
// @Summary      Correct a period's due date
// @Description  Lateness and status are measured from the override. An empty due_date clears it. as_of defaults to today.
// @Tags         periods
// @Accept       json
// @Produce      json
// @Param        id      path string true "Rent period ID" format(uuid)
// @Param        request body ledgerapp.OverrideDueDateRequest true "New due date"
// @Success      200 {object} APIResponse[ledgerapp.PeriodResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /periods/{id}/due-date [put]
func (h *PaymentHandler) OverrideDueDate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ledgerapp.OverrideDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	dueDate, ok := h.parseDateOr(c, "due_date", req.DueDate, func() valueobject.Date { return valueobject.Date{} })
	if !ok {
		return
	}
	asOf, ok := h.parseDateOr(c, "as_of", req.AsOf, h.clock)
	if !ok {
		return
	}

	period, err := h.svc.OverridePeriodDueDate(c.Request.Context(), id, dueDate, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, period)
}
