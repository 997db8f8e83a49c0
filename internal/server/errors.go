package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kmurdhar/PrinterManagementSystem/internal/observability/logger"
	printjobdomain "github.com/kmurdhar/PrinterManagementSystem/internal/printjob/domain"
)

// Stable error categories on the wire. Validation failures must be fixed by
// the caller; storage failures may be retried with backoff.
const (
	categoryValidation         = "validation_error"
	categoryNotFound           = "not_found"
	categoryRateLimited        = "rate_limited"
	categoryStorage            = "storage_error"
	categoryServiceUnavailable = "service_unavailable"
)

var (
	ErrNotFound           = errors.New("not_found")
	ErrServiceUnavailable = errors.New("service_unavailable")
	ErrRateLimited        = errors.New("rate_limited")
)

type apiError struct {
	status   int
	Category string `json:"category"`
	Field    string `json:"field,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
}

func (e *apiError) Error() string { return e.Message }

func newValidationError(field, code, message string) error {
	return &apiError{
		status:   http.StatusBadRequest,
		Category: categoryValidation,
		Field:    field,
		Code:     code,
		Message:  message,
	}
}

func invalidRequestError() error {
	return newValidationError("", "invalid_request", "request body or query is malformed")
}

// AbortWithError classifies err, writes the failure envelope and stops the
// handler chain. Storage failures are logged in full server-side and
// surfaced with a generic message only.
func AbortWithError(c *gin.Context, err error) {
	resp := classify(err)
	if resp.Category == categoryStorage {
		logger.FromContext(c.Request.Context()).Error("storage failure",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(resp.status, gin.H{
		"success": false,
		"error":   resp,
	})
}

func classify(err error) *apiError {
	var apiErr *apiError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case printjobdomain.IsValidationError(err):
		return &apiError{
			status:   http.StatusBadRequest,
			Category: categoryValidation,
			Field:    validationField(err),
			Code:     err.Error(),
			Message:  "job report failed validation",
		}
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return &apiError{
			status:   http.StatusNotFound,
			Category: categoryNotFound,
			Message:  "resource not found",
		}
	case errors.Is(err, ErrRateLimited):
		return &apiError{
			status:   http.StatusTooManyRequests,
			Category: categoryRateLimited,
			Message:  "too many reports from this machine, retry later",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return &apiError{
			status:   http.StatusServiceUnavailable,
			Category: categoryServiceUnavailable,
			Message:  "service unavailable",
		}
	default:
		return &apiError{
			status:   http.StatusInternalServerError,
			Category: categoryStorage,
			Message:  "storage operation failed, retry with backoff",
		}
	}
}

func validationField(err error) string {
	switch {
	case errors.Is(err, printjobdomain.ErrInvalidUserName):
		return "userName"
	case errors.Is(err, printjobdomain.ErrInvalidMachineName):
		return "machineName"
	case errors.Is(err, printjobdomain.ErrInvalidPrinterName):
		return "printerName"
	case errors.Is(err, printjobdomain.ErrInvalidPageCount):
		return "pageCount"
	case errors.Is(err, printjobdomain.ErrInvalidFileSize):
		return "fileSize"
	default:
		return ""
	}
}
