package middleware

import (
	"net/http"
	"strings"

	"github.com/eaglebank/user-registry/shared/apperror"
	"github.com/eaglebank/user-registry/shared/models"
	"github.com/gin-gonic/gin"
)

// StatusLabel is the short upper-case label used in the response envelope.
func StatusLabel(code int) string {
	return strings.ToUpper(http.StatusText(code))
}

// RespondWithStatus writes the {code, status, message} envelope.
func RespondWithStatus(c *gin.Context, code int, message string) {
	c.JSON(code, models.APIResponse{
		Code:    code,
		Status:  StatusLabel(code),
		Message: message,
	})
}

// RespondWithError translates err into the envelope. Errors without a known
// kind are logged as internal failures and get a generic message.
func RespondWithError(c *gin.Context, err error) {
	code := apperror.StatusOf(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	RespondWithStatus(c, code, apperror.MessageOf(err))
}

// RespondWithValidationError rejects the request with the aggregated
// validation messages.
func RespondWithValidationError(c *gin.Context, validationErrors []ValidationError) {
	RespondWithError(c, apperror.New(
		apperror.ErrInvalidRequestBody,
		AggregateMessages(ValidationMessages(validationErrors)),
	))
}
