package dto

import "net/http"

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Error codes returned by the control API
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeInvalidState    = "INVALID_STATE"
	ErrCodeNoOpenRegister  = "NO_OPEN_REGISTER"
	ErrCodeRegisterCorrupt = "REGISTER_STATE_CORRUPT"
	ErrCodeBackendFailure  = "BACKEND_FAILURE"
	ErrCodeValidation      = "VALIDATION_ERROR"
)

// ValidationDetail describes one field that failed validation
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationErrorResponse creates an error response carrying
// per-field validation details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	return Response{
		Success: false,
		Data:    details,
		Error: &ErrorInfo{
			Code:      ErrCodeValidation,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// domainErrorCodeMapping maps domain error codes to control API codes.
// Unlisted codes pass through unchanged.
var domainErrorCodeMapping = map[string]string{
	"WINDOW_NOT_FOUND": ErrCodeNotFound,
	"INVALID_INPUT":    ErrCodeBadRequest,
	"INVALID_PRODUCT":  ErrCodeBadRequest,
	"INVALID_QUANTITY": ErrCodeBadRequest,
	"INVALID_PRICE":    ErrCodeBadRequest,
	"INVALID_TAX_RATE": ErrCodeBadRequest,
	"INVALID_STATUS":   ErrCodeBadRequest,
}

// NormalizeErrorCode converts a domain error code to the control API format
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the request id
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// GetHTTPStatus derives the HTTP status code from an error code
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeBadRequest, ErrCodeInvalidState, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeConflict, ErrCodeNoOpenRegister, ErrCodeRegisterCorrupt:
		return http.StatusConflict
	case ErrCodeBackendFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
