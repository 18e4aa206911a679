// Package services provides the business logic layer between handlers and
// the analytics engines. Services validate and coerce request payloads,
// run the engines and shape responses.
package services

// Error codes surfaced by the service layer.
const (
	// ErrCodeInvalidInput marks unparseable or missing numeric/structural
	// request data.
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
