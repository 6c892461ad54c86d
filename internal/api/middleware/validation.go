package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"voicescribe/internal/api/errors"
)

var validate = validator.New()

// ValidateRequest binds the JSON body into req and runs struct
// validation, rendering a validation error response on failure.
// Returns false if the request was rejected.
func ValidateRequest(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleError(c, errors.NewBadRequestError("invalid request body: "+err.Error()))
		return false
	}

	if err := validate.Struct(req); err != nil {
		details := map[string]string{}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				details[fe.Field()] = fmt.Sprintf("failed on '%s' validation", fe.Tag())
			}
		}
		HandleError(c, errors.NewValidationError("request validation failed", details))
		return false
	}

	return true
}
