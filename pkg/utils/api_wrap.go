package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Kind    string      `json:"kind,omitempty"`
	Reason  string      `json:"reason,omitempty"`
	Field   string      `json:"field,omitempty"`
	Details string      `json:"details,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

var exposeErrorDetails atomic.Bool

// SetExposeErrorDetails controls whether raw causes are echoed to clients.
// It is switched on outside production.
func SetExposeErrorDetails(expose bool) {
	exposeErrorDetails.Store(expose)
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Kind:    kindForStatus(code),
		TraceID: c.GetString("trace_id"),
	})
}

// RespondBindingError reports a request that failed gin binding. The first
// failing field is named when the validator produced field errors.
func RespondBindingError(c *gin.Context, err error) {
	resp := APIResponse{
		Status:  "error",
		Code:    http.StatusBadRequest,
		Message: "Invalid request format",
		Kind:    KindName(ErrValidation),
		TraceID: c.GetString("trace_id"),
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		resp.Field = fe.Field()
		resp.Message = fieldErrorMessage(fe)
	}
	if exposeErrorDetails.Load() {
		resp.Details = err.Error()
	}

	c.JSON(http.StatusBadRequest, resp)
}

func HandleServiceError(c *gin.Context, err error) {
	code := statusFor(err)
	resp := APIResponse{
		Status:  "error",
		Code:    code,
		Message: "Internal server error",
		Kind:    KindName(err),
		TraceID: c.GetString("trace_id"),
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
		resp.Reason = appErr.Reason
		resp.Field = appErr.Field
	}

	if code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"error", err, "path", c.FullPath())
	}

	if exposeErrorDetails.Load() {
		resp.Details = err.Error()
	}

	c.JSON(code, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTokenMalformed):
		return http.StatusBadRequest
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return KindName(ErrValidation)
	case http.StatusNotFound:
		return KindName(ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindName(ErrUnauthorized)
	case http.StatusConflict:
		return KindName(ErrConflict)
	case http.StatusTooManyRequests:
		return "rate_limited"
	default:
		return KindName(nil)
	}
}
