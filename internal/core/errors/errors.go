package errors

const (
	HttpInternalError    = "internal_error"
	HttpInvalidJsonError = "invalid_json"
	HttpNotFoundError    = "not_found"
	HttpValidationError  = "validation_failed"
)

// ErrorResponse is the error response body for all HTTP handlers.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
