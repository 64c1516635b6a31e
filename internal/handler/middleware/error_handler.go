package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/handler/dto"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrorHandlerMiddleware is the single boundary turning internal errors into
// HTTP statuses. Every error response carries the same envelope; raw internal
// error text never reaches the client.
func ErrorHandlerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("ErrorHandler")
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)

		status := http.StatusInternalServerError
		message := "An unexpected error occurred."
		var details []dto.FieldError

		var ve validator.ValidationErrors
		var fieldErr *ierr.ValidationError

		switch {
		case errors.As(err, &ve):
			status = http.StatusBadRequest
			message = "Input validation failed."
			details = buildValidationErrors(ve)
		case errors.As(err, &fieldErr):
			status = http.StatusBadRequest
			message = "Input validation failed."
			details = make([]dto.FieldError, len(fieldErr.Violations))
			for i, v := range fieldErr.Violations {
				details[i] = dto.FieldError{Field: v.Field, Message: v.Message}
			}
		case errors.Is(err, ierr.ErrValidation):
			status = http.StatusBadRequest
			message = "Input validation failed."
		case errors.Is(err, ierr.ErrUnauthorized), errors.Is(err, ierr.ErrInvalidCredentials), errors.Is(err, ierr.ErrInvalidToken):
			status = http.StatusUnauthorized
			message = "Authentication required or failed."
		case errors.Is(err, ierr.ErrAPIKeyRevoked):
			status = http.StatusForbidden
			message = "API key has been revoked."
		case errors.Is(err, ierr.ErrAPIKeyExpired):
			status = http.StatusForbidden
			message = "API key has expired."
		case errors.Is(err, ierr.ErrForbidden):
			status = http.StatusForbidden
			message = "Access denied."
		case errors.Is(err, ierr.ErrRateLimited):
			status = http.StatusTooManyRequests
			message = "Rate limit exceeded. Retry after the current window."
		case errors.Is(err, ierr.ErrNotFound), errors.Is(err, ierr.ErrUserNotFound), errors.Is(err, ierr.ErrAPIKeyNotFound):
			status = http.StatusNotFound
			message = "The requested resource was not found."
		case errors.Is(err, ierr.ErrConflict):
			status = http.StatusConflict
			message = "The request conflicts with existing state."
		}

		c.AbortWithStatusJSON(status, dto.APIErrorResponse{
			StatusCode: status,
			Message:    message,
			Timestamp:  time.Now().UTC(),
			Details:    details,
		})
	}
}

func buildValidationErrors(ve validator.ValidationErrors) []dto.FieldError {
	details := make([]dto.FieldError, len(ve))
	for i, fe := range ve {
		details[i] = dto.FieldError{
			Field:   fe.Field(),
			Message: getValidationErrorMsg(fe),
		}
	}
	return details
}

func getValidationErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", fe.Field())
	case "email":
		return fmt.Sprintf("Field '%s' must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("Field '%s' must be one of [%s]", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("Field '%s' must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("Field '%s' must be less than or equal to %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("Field '%s' must be greater than %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("Field '%s' must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("Field '%s' must be at most %s characters", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("Field '%s' must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("Field '%s' failed validation on the '%s' tag", fe.Field(), fe.Tag())
	}
}
