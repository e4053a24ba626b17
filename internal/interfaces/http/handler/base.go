package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Clock returns the current ledger date. Handlers are the only place that
// read the wall clock; everything below them takes an explicit date.
type Clock func() valueobject.Date

// UTCClock is the production clock
func UTCClock() valueobject.Date {
	return valueobject.Today(time.UTC)
}

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 response for a request binding failure
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleDomainError converts domain errors to HTTP responses. Anything that
// is not a domain error is logged and reported as an internal error.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		statusCode := dto.GetHTTPStatus(code)
		if statusCode >= http.StatusInternalServerError {
			logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
		}
		h.Error(c, statusCode, code, domainErr.Message)
		return
	}

	logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
	_ = c.Error(err)
	h.InternalError(c, "An unexpected error occurred")
}

// parseUUIDParam reads a UUID path parameter, answering 400 when malformed
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// parseDateOr parses an optional YYYY-MM-DD value, using fallback when empty
func (h *BaseHandler) parseDateOr(c *gin.Context, field, raw string, fallback Clock) (valueobject.Date, bool) {
	if raw == "" {
		return fallback(), true
	}
	d, err := valueobject.ParseDate(raw)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, field+" must be a YYYY-MM-DD date")
		return valueobject.Date{}, false
	}
	return d, true
}

// parseOptionalUUIDQuery reads an optional UUID query parameter
func (h *BaseHandler) parseOptionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+": must be a UUID")
		return nil, false
	}
	return &id, true
}

// bindFilterIDs fills the tenant and property filters from the query string
func (h *BaseHandler) bindFilterIDs(c *gin.Context, tenantID, propertyID **uuid.UUID) bool {
	var ok bool
	if *tenantID, ok = h.parseOptionalUUIDQuery(c, "tenant_id"); !ok {
		return false
	}
	*propertyID, ok = h.parseOptionalUUIDQuery(c, "property_id")
	return ok
}
