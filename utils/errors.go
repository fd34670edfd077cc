package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ApiError is an error that maps directly to an HTTP response.
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
	Fields     []FieldError
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+" not found", http.StatusNotFound, "RESOURCE_NOT_FOUND")
}

func CreateUnauthorizedError(message string) *ApiError {
	if message == "" {
		message = "Unauthorized"
	}
	return NewApiError(message, http.StatusUnauthorized, "UNAUTHORIZED")
}

func CreateForbiddenError() *ApiError {
	return NewApiError("Insufficient permissions", http.StatusForbidden, "FORBIDDEN")
}

func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, "BAD_REQUEST")
}

func CreateConflictError(message string) *ApiError {
	return NewApiError(message, http.StatusConflict, "CONFLICT")
}

func CreateTooManyRequestsError(message string) *ApiError {
	return NewApiError(message, http.StatusTooManyRequests, "TOO_MANY_REQUESTS")
}

// CreateValidationError turns a binding failure into a 400 with per-field detail.
func CreateValidationError(err error) *ApiError {
	apiErr := NewApiError("Validation failed", http.StatusBadRequest, "VALIDATION_ERROR")

	var verrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			apiErr.Fields = append(apiErr.Fields, FieldError{
				Field:   lowerFirst(fe.Field()),
				Rule:    fe.Tag(),
				Message: fieldMessage(fe),
			})
		}
	case errors.As(err, &typeErr):
		apiErr.Fields = append(apiErr.Fields, FieldError{
			Field:   typeErr.Field,
			Rule:    "type",
			Message: fmt.Sprintf("must be %s", typeErr.Type.String()),
		})
	case errors.As(err, &syntaxErr):
		apiErr.Message = "Malformed JSON body"
	default:
		apiErr.Message = err.Error()
	}
	return apiErr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "uuid", "uuid4":
		return "must be a valid UUID"
	default:
		return "failed on " + fe.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

var exposeErrorDetails = true

// SetErrorDetail controls whether 500 responses include the underlying error.
// It is switched off in production.
func SetErrorDetail(expose bool) {
	exposeErrorDetails = expose
}

// HandleError writes the response for err and aborts the chain.
func HandleError(c *gin.Context, err error) {
	if c == nil || err == nil {
		return
	}

	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= http.StatusInternalServerError {
			LogError(err, map[string]interface{}{"path": c.Request.URL.Path, "method": c.Request.Method}, "api error")
		} else {
			Logger.Debug().Str("path", c.Request.URL.Path).Str("code", apiErr.ErrorCode).Msg(apiErr.Message)
		}
		response := gin.H{"success": false, "message": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		if len(apiErr.Fields) > 0 {
			response["errors"] = apiErr.Fields
		}
		c.AbortWithStatusJSON(apiErr.StatusCode, response)
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		HandleError(c, CreateValidationError(err))
		return
	}

	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, "unexpected error")

	response := gin.H{
		"success": false,
		"message": "Internal server error",
	}
	if exposeErrorDetails {
		response["error"] = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, response)
}

func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}
