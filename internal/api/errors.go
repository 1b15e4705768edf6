package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acmecorp/dashboard-server/internal/apperrors"
	"github.com/acmecorp/dashboard-server/internal/models"
)

// ErrorHandlingMiddleware maps errors attached to the context into a
// JSON response once the handler chain finishes. Handlers attach errors
// via AbortWithError instead of writing their own failure bodies.
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

		status, resp := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, resp)
	}
}

// AbortWithError records err on the context for the error middleware
func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// mapError translates an error kind into a status code and a user-safe
// body. Only the message of an apperrors.Error is surfaced; wrapped
// driver errors stay in the server logs.
func mapError(err error) (int, models.ErrorResponse) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return http.StatusNotFound, models.ErrorResponse{
			Status:  "error",
			Code:    "NOT_FOUND",
			Message: err.Error(),
		}
	case apperrors.KindValidationFailed:
		return http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		}
	}
}
