package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")
	ErrHasRelations          = errors.New("resource has associated data and cannot be deleted")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrSelfModification   = errors.New("administrators cannot change their own role, status or account")
)

// Symposium errors
var (
	ErrSymposiumNotFound      = errors.New("symposium not found")
	ErrNoActiveSymposium      = errors.New("no active symposium")
	ErrSubmissionDeadlinePast = errors.New("submission deadline has passed")
	ErrTopicNotFound          = errors.New("topic not found")
	ErrTopicAlreadyExists     = errors.New("topic with this name already exists in the symposium")
)

// Paper (bildiri) errors
var (
	ErrPaperNotFound      = errors.New("paper not found")
	ErrPaperLocked        = errors.New("paper cannot be modified in its current status")
	ErrPaperFinalized     = errors.New("paper already has a final decision")
	ErrPaperNotAccepted   = errors.New("paper is not accepted")
	ErrInvalidManuscript  = errors.New("manuscript must be a readable PDF")
	ErrTooManyPages       = errors.New("manuscript exceeds the page limit")
	ErrReviewerNotAllowed = errors.New("user cannot review this paper")
)

// Revision (revize) errors
var (
	ErrRevisionNotFound  = errors.New("revision not found")
	ErrRevisionNotLatest = errors.New("only the latest revision can be edited")
	ErrNotAssigned       = errors.New("reviewer is not assigned to this paper")
)

// Catalog errors
var (
	ErrCommitteeMemberNotFound = errors.New("committee member not found")
	ErrJournalNotFound         = errors.New("journal not found")
	ErrProgramItemNotFound     = errors.New("program item not found")
	ErrSponsorNotFound         = errors.New("sponsor not found")
	ErrContactMessageNotFound  = errors.New("contact message not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError wraps ErrValidationFailed with a field-level message
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
