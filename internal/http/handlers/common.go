package handlers

import (
	"errors"
	"net/http"

	"tripdiary/internal/domain"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into dst. Decode failures come back as domain
// errors so RespondDomainError can report them with issues, except for an
// oversized body which keeps its *http.MaxBytesError.
func bindJSON[T any](c *gin.Context, dst *T) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return domain.DecodeError(errEmptyBody)
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return domain.DecodeError(err)
	}
	return nil
}

var errEmptyBody = errors.New("request body is empty")
