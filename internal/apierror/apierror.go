// Package apierror provides standardized error response structures for the
// API. All errors returned to clients go through this package so that
// internal details (stack traces, upstream errors) never leak.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validasi gagal", Fields: fields}
}

// ProxyError is the {success:false, error} envelope of the shipping proxy
// endpoints, kept separate because storefront clients depend on its shape.
type ProxyError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewProxy(msg string) *ProxyError {
	return &ProxyError{Success: false, Error: msg}
}
