package response

import "github.com/gin-gonic/gin"

// Error codes shared between the service and handler layers
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeExternalAPI   = "EXTERNAL_API_ERROR"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// AppError is the application error carried from the service layer to the
// handler layer, where the code is mapped to an HTTP status
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// NewAppError creates a new AppError with the given code, message and details
func NewAppError(code, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewNotFoundError creates an AppError with the NOT_FOUND code
func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, "")
}

// NewValidationError creates an AppError with the VALIDATION_ERROR code
func NewValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, "")
}

// NewForbiddenError creates an AppError with the FORBIDDEN code
func NewForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, "")
}

// ErrorBody holds the code and message of an error response
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for all error responses
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// SuccessResponse is the envelope for all success responses
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// SendError writes a standard error envelope to the client
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

// SendSuccess writes a standard success envelope to the client
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Data:    data,
	})
}
