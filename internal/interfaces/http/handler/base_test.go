package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestBaseHandler_Success(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandler_SuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")

	h.SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 20)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandler_Created(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodPost, "/")

	h.Created(c, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandler_ErrorCarriesRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")
	c.Set(logger.GinRequestIDKey, "req-42")

	h.BadRequest(c, "nope")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "nope", resp.Error.Message)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}

func TestBaseHandler_HandleDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"invalid input", shared.NewDomainError("INVALID_INPUT", "bad"), http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"invalid lease", ledger.ErrInvalidLease, http.StatusBadRequest, dto.ErrCodeInvalidLease},
		{"tenant not found", ledger.ErrTenantNotFound, http.StatusNotFound, dto.ErrCodeTenantNotFound},
		{"period not found", ledger.ErrPeriodNotFound, http.StatusNotFound, dto.ErrCodePeriodNotFound},
		{"non positive amount", ledger.ErrNonPositiveAmount, http.StatusBadRequest, dto.ErrCodeNonPositiveAmount},
		{"allocation conflict", ledger.AllocationConflictError("stale version"), http.StatusConflict, dto.ErrCodeAllocationConflict},
		{"wrapped", fmt.Errorf("loading lease: %w", ledger.ErrTenantNotFound), http.StatusNotFound, dto.ErrCodeTenantNotFound},
		{"unknown domain code", shared.NewDomainError("SOMETHING_NEW", "x"), http.StatusInternalServerError, "SOMETHING_NEW"},
		{"plain error", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodGet, "/")

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_HandleDomainError_HidesInternalDetail(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")

	h.HandleDomainError(c, errors.New("pq: password authentication failed"))

	resp := decodeResponse(t, w)
	assert.NotContains(t, resp.Error.Message, "password")
}

func TestBaseHandler_ParseUUIDParam(t *testing.T) {
	h := &BaseHandler{}

	t.Run("valid", func(t *testing.T) {
		id := uuid.New()
		c, _ := newTestContext(http.MethodGet, "/")
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		got, ok := h.parseUUIDParam(c, "id")
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("malformed", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/")
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		_, ok := h.parseUUIDParam(c, "id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBaseHandler_ParseDateOr(t *testing.T) {
	h := &BaseHandler{}
	fixed := func() valueobject.Date { return valueobject.MustParseDate("2024-06-30") }

	t.Run("empty uses fallback", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/")
		d, ok := h.parseDateOr(c, "as_of", "", fixed)
		assert.True(t, ok)
		assert.Equal(t, "2024-06-30", d.String())
	})

	t.Run("explicit date", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/")
		d, ok := h.parseDateOr(c, "as_of", "2024-02-29", fixed)
		assert.True(t, ok)
		assert.Equal(t, "2024-02-29", d.String())
	})

	t.Run("malformed", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/")
		_, ok := h.parseDateOr(c, "as_of", "02/29/2024", fixed)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, decodeResponse(t, w).Error.Code)
	})
}

func TestBaseHandler_ParseOptionalUUIDQuery(t *testing.T) {
	h := &BaseHandler{}

	c, _ := newTestContext(http.MethodGet, "/")
	got, ok := h.parseOptionalUUIDQuery(c, "tenant_id")
	assert.True(t, ok)
	assert.Nil(t, got)

	id := uuid.New()
	c, _ = newTestContext(http.MethodGet, "/?tenant_id="+id.String())
	got, ok = h.parseOptionalUUIDQuery(c, "tenant_id")
	assert.True(t, ok)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)

	c, w := newTestContext(http.MethodGet, "/?tenant_id=xyz")
	_, ok = h.parseOptionalUUIDQuery(c, "tenant_id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping() error { return p.err }

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewSystemHandler("Rentdesk Ledger API", "1.0.0", stubPinger{})
		c, w := newTestContext(http.MethodGet, "/health")

		h.Health(c)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "ok", data["status"])
	})

	t.Run("database down", func(t *testing.T) {
		h := NewSystemHandler("Rentdesk Ledger API", "1.0.0", stubPinger{err: errors.New("refused")})
		c, w := newTestContext(http.MethodGet, "/health")

		h.Health(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "unreachable", data["database"])
	})

	t.Run("no database", func(t *testing.T) {
		h := NewSystemHandler("Rentdesk Ledger API", "1.0.0", nil)
		c, w := newTestContext(http.MethodGet, "/health")

		h.Health(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler("Rentdesk Ledger API", "1.2.3", nil)
	c, w := newTestContext(http.MethodGet, "/system/info")

	h.GetSystemInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "Rentdesk Ledger API", data["name"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.NotEmpty(t, data["go_version"])
}
