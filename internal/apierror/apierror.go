// Package apierror provides the error envelope written by every handler.
// Internal details (SQL errors, stack traces) never reach the client: handlers
// log the cause and respond with one of these.
package apierror

// Machine-readable codes carried next to the human message.
const (
	CodeNotFound          = "not_found"
	CodeValidation        = "validation_error"
	CodeInsufficientStock = "insufficient_stock"
	CodeConflict          = "conflict"
	CodeDependencyDown    = "dependency_unavailable"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeInternal          = "internal_error"
	CodeRateLimited       = "rate_limited"
	CodeMalformedRequest  = "malformed_request"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func WithCode(code, msg string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// ValidationError wraps per-field validator failures (field → failed tag).
type ValidationError struct {
	Detail string            `json:"detail"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Code: CodeValidation, Fields: fields}
}
