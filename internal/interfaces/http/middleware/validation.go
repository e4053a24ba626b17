package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// Custom validation tags used by the ledger request DTOs
const (
	TagCadence    = "cadence"
	TagDecimalGT0 = "decimal_gt0"
)

var (
	setupOnce sync.Once
	setupErr  error
)

// SetupValidator configures gin's validator: JSON field names in errors and
// the ledger tags. Safe to call more than once.
func SetupValidator() error {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		if setupErr = v.RegisterValidation(TagCadence, validateCadence); setupErr != nil {
			return
		}
		setupErr = v.RegisterValidation(TagDecimalGT0, validateDecimalGT0)
	})
	return setupErr
}

func validateCadence(fl validator.FieldLevel) bool {
	_, err := ledger.ParseCadence(fl.Field().String())
	return err == nil
}

func validateDecimalGT0(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && d.IsPositive()
}

// FormatValidationErrors formats binding errors into the error envelope.
// Errors that are not field validation failures become a bad request.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, "Malformed request: "+err.Error(), requestID)
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: getValidationMessage(e),
		})
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 response for a binding error
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case TagCadence:
		return "Must be one of: weekly, bi_weekly, monthly"
	case TagDecimalGT0:
		return "Must be a positive decimal amount"
	case "datetime":
		if e.Param() == "2006-01-02" {
			return "Must be a YYYY-MM-DD date"
		}
		return "Must be a date in the layout " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	default:
		return "Invalid value"
	}
}
