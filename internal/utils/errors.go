package utils

type AppError struct {
	Code    string
	Message string
	Origin  error // Original error that caused this error, if any
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

// Standard error codes for the application
const (
	// Resource errors
	ErrNotFound     = "NOT_FOUND"
	ErrDuplicate    = "DUPLICATE"
	ErrInvalidInput = "INVALID_INPUT"

	// Session errors
	ErrLoginRequired      = "LOGIN_REQUIRED" // Action needs a session; caller should show the login prompt
	ErrForbidden          = "FORBIDDEN"      // Session exists but may not touch the resource
	ErrInvalidToken       = "INVALID_TOKEN"
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrUserAlreadyExists  = "USER_ALREADY_EXISTS"

	// Form validation
	ErrCaptchaMismatch = "CAPTCHA_MISMATCH"

	// Community-specific errors
	ErrCommunityNotFound = "COMMUNITY_NOT_FOUND"
	ErrNotMember         = "NOT_COMMUNITY_MEMBER"

	// Actor communication errors
	ErrActorTimeout = "ACTOR_TIMEOUT"
)

// Error creation helper functions
func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

// Specific error creators for common cases
func NewLoginRequiredError(action string) *AppError {
	return &AppError{
		Code:    ErrLoginRequired,
		Message: "Login required: " + action,
	}
}

func NewCommunityNotFoundError(name string) *AppError {
	return &AppError{
		Code:    ErrCommunityNotFound,
		Message: "Community not found: " + name,
	}
}

func NewActorTimeoutError(actorName string) *AppError {
	return &AppError{
		Code:    ErrActorTimeout,
		Message: "Actor communication timeout: " + actorName,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidInput,
		Message: message,
	}
}

// Helper method to check if an error is of a specific type
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// Helper method to check if an error should surface the login prompt
func IsLoginPrompt(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrLoginRequired ||
			appErr.Code == ErrInvalidToken
	}
	return false
}
