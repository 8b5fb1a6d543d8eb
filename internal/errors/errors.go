package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeEmptyTitle      = "EMPTY_TITLE"
	ErrCodeDuplicateTitle  = "DUPLICATE_TITLE"
	ErrCodeEmptyField      = "EMPTY_FIELD"
	ErrCodeNoQuestions     = "NO_QUESTIONS"
	ErrCodeIndexOutOfRange = "INDEX_OUT_OF_RANGE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "EMPTY_TITLE")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a recoverable, user-facing
// validation failure (4xx) rather than an internal fault.
func IsValidation(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Status >= 400 && appErr.Status < 500
}

// Code returns the error code of err, or INTERNAL_ERROR for plain errors.
func Code(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewEmptyTitleError reports a deck created with a blank title.
func NewEmptyTitleError() *AppError {
	return &AppError{
		Code:    ErrCodeEmptyTitle,
		Message: "deck title cannot be empty",
		Status:  400,
	}
}

// NewDuplicateTitleError reports a deck title that already exists.
func NewDuplicateTitleError(title string) *AppError {
	return &AppError{
		Code:    ErrCodeDuplicateTitle,
		Message: fmt.Sprintf("a deck titled %q already exists", title),
		Status:  400,
	}
}

// NewEmptyFieldError reports a blank question or answer field.
func NewEmptyFieldError(field string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyField,
		Message: fmt.Sprintf("%s cannot be empty", field),
		Status:  400,
	}
}

// NewNoQuestionsError reports practice started on a deck with no questions.
func NewNoQuestionsError() *AppError {
	return &AppError{
		Code:    ErrCodeNoQuestions,
		Message: "deck has no questions to practice",
		Status:  400,
	}
}

// NewIndexOutOfRangeError reports a question index outside the deck's list.
func NewIndexOutOfRangeError(index, length int) *AppError {
	return &AppError{
		Code:    ErrCodeIndexOutOfRange,
		Message: fmt.Sprintf("question index %d out of range (deck has %d)", index, length),
		Status:  400,
	}
}
