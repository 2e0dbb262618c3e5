package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// USAGE_LIMIT_EXCEEDED is the machine-readable marker the extension keys
// its upgrade prompt on.
const CodeUsageLimitExceeded = "USAGE_LIMIT_EXCEEDED"

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   message,
		TraceID: traceID(c),
	})
}

func respondErrorCode(c *gin.Context, status int, message, code string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   message,
		Code:    code,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinels onto the HTTP surface.
// Anything unclassified becomes a bare 500 with no internal detail.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingCredential), errors.Is(err, ErrInvalidCredential):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrQuotaExceeded):
		respondErrorCode(c, http.StatusPaymentRequired,
			"Usage limit exceeded. Please upgrade your plan.", CodeUsageLimitExceeded)
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, ErrInvalidImage):
		RespondError(c, http.StatusBadRequest, "Invalid image data")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrSheetsNotLinked):
		RespondError(c, http.StatusBadRequest, "Spreadsheet not configured")
	case errors.Is(err, ErrSheetsNotFound):
		RespondError(c, http.StatusNotFound, "Spreadsheet not found")
	case errors.Is(err, ErrUpstreamUnavailable):
		log.Printf("Upstream error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Failed to process bet slip. Please try again.")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
