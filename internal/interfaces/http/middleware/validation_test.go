package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentForm struct {
	Amount      string  `json:"amount" binding:"required,decimal_gt0"`
	Cadence     string  `json:"cadence" binding:"omitempty,cadence"`
	PaymentDate string  `json:"payment_date" binding:"required,datetime=2006-01-02"`
	Correction  *string `json:"correction" binding:"omitempty,decimal_gt0"`
	Notes       string  `json:"notes" binding:"max=5"`
}

func validationRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, SetupValidator())
	require.NoError(t, SetupValidator())

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req paymentForm
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func postJSON(router *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestValidation_LedgerTags(t *testing.T) {
	router := validationRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
		fields []string
	}{
		{"valid", `{"amount":"1200.50","cadence":"bi_weekly","payment_date":"2024-01-10"}`, http.StatusOK, nil},
		{"zero amount", `{"amount":"0","payment_date":"2024-01-10"}`, http.StatusBadRequest, []string{"amount"}},
		{"negative amount", `{"amount":"-5","payment_date":"2024-01-10"}`, http.StatusBadRequest, []string{"amount"}},
		{"not a number", `{"amount":"ten","payment_date":"2024-01-10"}`, http.StatusBadRequest, []string{"amount"}},
		{"unknown cadence", `{"amount":"10","cadence":"daily","payment_date":"2024-01-10"}`, http.StatusBadRequest, []string{"cadence"}},
		{"bad date", `{"amount":"10","payment_date":"10/01/2024"}`, http.StatusBadRequest, []string{"payment_date"}},
		{"pointer amount", `{"amount":"10","payment_date":"2024-01-10","correction":"0"}`, http.StatusBadRequest, []string{"correction"}},
		{"notes too long", `{"amount":"10","payment_date":"2024-01-10","notes":"cheque 1042"}`, http.StatusBadRequest, []string{"notes"}},
		{"missing fields", `{}`, http.StatusBadRequest, []string{"amount", "payment_date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := postJSON(router, tt.body)
			assert.Equal(t, tt.status, w.Code)
			if tt.fields == nil {
				return
			}
			require.NotNil(t, resp.Error)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
			got := make([]string, 0, len(resp.Error.Details))
			for _, d := range resp.Error.Details {
				got = append(got, d.Field)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestValidation_Messages(t *testing.T) {
	router := validationRouter(t)

	_, resp := postJSON(router, `{"amount":"0","cadence":"daily","payment_date":"2024/01/10"}`)
	require.NotNil(t, resp.Error)
	messages := map[string]string{}
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Must be a positive decimal amount", messages["amount"])
	assert.Equal(t, "Must be one of: weekly, bi_weekly, monthly", messages["cadence"])
	assert.Equal(t, "Must be a YYYY-MM-DD date", messages["payment_date"])
}

func TestValidation_MalformedJSON(t *testing.T) {
	router := validationRouter(t)

	w, resp := postJSON(router, `{"amount":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}
