package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/shared/constants"
	"github.com/civictrack/civictrack/internal/shared/errors"
)

// ErrorBody is the uniform failure envelope.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse writes {"success": true, ...payload}.
func SuccessResponse(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		if k == "success" {
			continue
		}
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// OKResponse sends a 200 success envelope.
func OKResponse(c *gin.Context, payload gin.H) {
	SuccessResponse(c, http.StatusOK, payload)
}

// CreatedResponse sends a 201 success envelope.
func CreatedResponse(c *gin.Context, payload gin.H) {
	SuccessResponse(c, http.StatusCreated, payload)
}

// ListSuccessResponse sends a paginated list under key with count, total,
// page and pages alongside it.
func ListSuccessResponse(c *gin.Context, key string, items interface{}, count int, total int64, page, limit int) {
	OKResponse(c, gin.H{
		"count": count,
		"total": total,
		"page":  page,
		"pages": TotalPages(total, limit),
		key:     items,
	})
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{
		Success: false,
		Message: message,
	})
}

// ErrorResponseWithError sends an error response based on error type
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		// Non-AppError details stay in the logs.
		ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
		return
	}

	c.JSON(appErr.Code, ErrorBody{
		Success: false,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}
