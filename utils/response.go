package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of the machine-readable validation failure list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func JSONSuccess(c *gin.Context, code int, message string, data interface{}) {
	body := gin.H{"status": "success"}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}

// JSONValidationError returns 400 with per-field failures.
func JSONValidationError(c *gin.Context, errs []FieldError) {
	c.JSON(400, gin.H{"status": "error", "message": "Date invalide", "errors": errs})
}

// FieldErrorsFromBinding converts a gin binding error into the field list.
// Non-validator errors (malformed JSON, type mismatches) map to a single
// body-level entry.
func FieldErrorsFromBinding(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageForTag(fe)})
	}
	return out
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "too short or too small (min " + fe.Param() + ")"
	case "max":
		return "too long or too large (max " + fe.Param() + ")"
	case "personname":
		return "may only contain letters and spaces"
	case "phone":
		return "must be a valid phone number"
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "is invalid"
}
