package api

import (
	"encoding/json" // JSON type errors
	"errors"        // Error matching
	"io"            // Empty body detection
	"net/http"      // HTTP status codes
	"reflect"       // Struct tag lookup
	"strings"       // Tag parsing
	"sync"          // One-time validator setup

	"wallet_ledger/internal/ledger"     // Ledger sentinel errors
	"wallet_ledger/internal/middleware" // Request ID key

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Gin's validator engine
	"github.com/go-playground/validator/v10" // Validation errors
	"github.com/sirupsen/logrus"             // Logging library
)

// ValidationError describes one rejected request field
type ValidationError struct {
	Field   string `json:"field"`   // JSON field or path parameter
	Message string `json:"message"` // Human readable reason
	Type    string `json:"type"`    // Failed rule
}

var registerOnce sync.Once

// registerJSONFieldNames makes validator report JSON names instead of Go field names
func registerJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// respondError maps ledger errors to status codes. Unknown errors are logged and hidden.
func respondError(c *gin.Context, log *logrus.Logger, err error, fields logrus.Fields) {
	switch {
	case errors.Is(err, ledger.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, ledger.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	default:
		fields["error"] = err.Error()
		fields["request_id"] = c.GetString(middleware.RequestIDKey)
		log.WithFields(fields).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondInvalid answers 422 with per-field details
func respondInvalid(c *gin.Context, details []ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "Invalid request",
		"details": details,
	})
}

// bindingDetails converts a ShouldBindJSON error into field details
func bindingDetails(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, ValidationError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
				Type:    fe.Tag(),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []ValidationError{{
			Field:   typeErr.Field,
			Message: "Value must be a " + typeErr.Type.String(),
			Type:    "type_error",
		}}
	}

	if errors.Is(err, io.EOF) {
		return []ValidationError{{Field: "body", Message: "Request body is required", Type: "missing"}}
	}
	return []ValidationError{{Field: "body", Message: "Malformed JSON body", Type: "json_invalid"}}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	default:
		return "Invalid value"
	}
}
