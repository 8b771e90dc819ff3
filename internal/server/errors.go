package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	agentpricingdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/domain"
	ratedomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/domain"
	tenantdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrTooManyRequests = errors.New("too_many_requests")
	ErrInternal        = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, tenantdomain.ErrTenantNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "tenant_not_found",
			Message: "no tenant matches the request",
		}
	case errors.Is(err, ratedomain.ErrNoFallbackRate):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "no_fallback_rate",
			Message: "no rate rule or fallback rate for the request",
		}
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "request rate limit exceeded",
		}
	case errors.Is(err, tenantdomain.ErrLookupFailed):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "tenant lookup backend unavailable",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case errors.Is(err, ratedomain.ErrInvalidVehicleType),
		errors.Is(err, ratedomain.ErrInvalidDistance),
		errors.Is(err, ratedomain.ErrInvalidCity),
		errors.Is(err, ratedomain.ErrInvalidNights),
		errors.Is(err, ratedomain.ErrInvalidRoute):
		return true
	case errors.Is(err, agentpricingdomain.ErrInvalidBasePrice),
		errors.Is(err, agentpricingdomain.ErrInvalidDemandIndex),
		errors.Is(err, agentpricingdomain.ErrInvalidOccupancy):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog buckets an error for the request log without leaking
// internals into response handling.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	switch {
	case asValidationErrors(err) != nil, isValidationError(err):
		return "validation", validationErrorCode(err)
	case errors.Is(err, tenantdomain.ErrTenantNotFound):
		return "not_found", "tenant_not_found"
	case errors.Is(err, ratedomain.ErrNoFallbackRate):
		return "unprocessable", "no_fallback_rate"
	case errors.Is(err, ErrTooManyRequests):
		return "rate_limited", "too_many_requests"
	case errors.Is(err, tenantdomain.ErrLookupFailed):
		return "unavailable", "tenant_lookup_failed"
	default:
		return "internal", "internal_error"
	}
}
