package handlers

import (
	"errors"
	"log"
	"net/http"

	"tripdiary/internal/domain"
	"tripdiary/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Message   string         `json:"message"`
	Code      string         `json:"code,omitempty"`
	Issues    []domain.Issue `json:"issues,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, issues []domain.Issue) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Message:   message,
		Code:      code,
		Issues:    issues,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		respondError(c, http.StatusRequestEntityTooLarge, "payload_too_large", "Payload too large", nil)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", domain.InvalidPayloadMessage, domain.IssuesOf(err))
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", "Not found", nil)
	default:
		log.Printf("[HTTP] request_id=%s internal error: %v", middleware.GetRequestID(c), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
	}
}
