package errors

import "fmt"

// Error codes
const (
	CodeDashboardError = "DASHBOARD_ERROR"
	CodeValidation     = "VALIDATION_ERROR"
	CodeLoad           = "LOAD_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeUnavailable    = "DATA_UNAVAILABLE"
)

type DashboardError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// HTTPStatus and ErrorCode are promoted to every type embedding
// *DashboardError, so callers match on Coded instead of the concrete type.
func (e *DashboardError) HTTPStatus() int { return e.StatusCode }

func (e *DashboardError) ErrorCode() string { return e.Code }

// Coded is implemented by all errors in this package.
type Coded interface {
	error
	HTTPStatus() int
	ErrorCode() string
}

func NewDashboardError(message, code string, statusCode int, context map[string]any) *DashboardError {
	return &DashboardError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *DashboardError) WithCause(cause error) *DashboardError {
	e.Cause = cause
	return e
}

type ValidationError struct {
	*DashboardError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		DashboardError: &DashboardError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// LoadError reports a dataset that could not be read or decoded.
type LoadError struct {
	*DashboardError
	Source string
}

func NewLoadError(message, source string, cause error) *LoadError {
	return &LoadError{
		DashboardError: &DashboardError{
			Message:    message,
			Code:       CodeLoad,
			StatusCode: 500,
			Context: map[string]any{
				"source": source,
			},
			Cause: cause,
		},
		Source: source,
	}
}

type NotFoundError struct {
	*DashboardError
	Resource string
	Key      string
}

func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{
		DashboardError: &DashboardError{
			Message:    fmt.Sprintf("%s %q not found", resource, key),
			Code:       CodeNotFound,
			StatusCode: 404,
			Context: map[string]any{
				"resource": resource,
				"key":      key,
			},
		},
		Resource: resource,
		Key:      key,
	}
}
