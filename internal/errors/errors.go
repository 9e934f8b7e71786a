// Package errors provides custom error types for the Heirloom API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
// Fields carries a field-keyed error map for form validation failures.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	StatusCode int               `json:"-"`
	Internal   error             `json:"-"`
	Fields     map[string]string `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying a field-keyed validation error map.
func WithFields(sentinel *AppError, fields map[string]string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Fields:     fields,
	}
}

// Authentication errors. Cross-tenant lookups deliberately surface the
// resource-specific not-found sentinels instead of a 403, so a foreign ID
// never confirms that the record exists.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrValidation     = &AppError{Code: "VALIDATION_FAILED", Message: "One or more fields are invalid", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Profile errors.
var (
	ErrAddressNotFound = &AppError{Code: "ADDRESS_NOT_FOUND", Message: "Address not found", StatusCode: http.StatusNotFound}
)

// Family member errors.
var (
	ErrFamilyMemberNotFound = &AppError{Code: "FAMILY_MEMBER_NOT_FOUND", Message: "Family member not found", StatusCode: http.StatusNotFound}
	ErrFamilyMemberInUse    = &AppError{Code: "FAMILY_MEMBER_IN_USE", Message: "Family member is nominated on existing assets", StatusCode: http.StatusConflict}
)

// Asset errors.
var (
	ErrAssetNotFound    = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrInvalidAssetKind = &AppError{Code: "INVALID_ASSET_KIND", Message: "Unsupported asset kind", StatusCode: http.StatusBadRequest}
)

// Nominee errors.
var (
	ErrNomineeNotFound    = &AppError{Code: "NOMINEE_NOT_FOUND", Message: "Nominee assignment not found", StatusCode: http.StatusNotFound}
	ErrDuplicateNominee   = &AppError{Code: "DUPLICATE_NOMINEE", Message: "This family member is already a nominee on the asset", StatusCode: http.StatusConflict}
	ErrAllocationExceeded = &AppError{Code: "ALLOCATION_EXCEEDED", Message: "Nominee shares for an asset cannot exceed 100%", StatusCode: http.StatusBadRequest}
	ErrInvalidPercentage  = &AppError{Code: "INVALID_PERCENTAGE", Message: "Percentage must be between 1 and 100", StatusCode: http.StatusBadRequest}
)

// Document errors.
var (
	ErrDocumentNotFound = &AppError{Code: "DOCUMENT_NOT_FOUND", Message: "Document not found", StatusCode: http.StatusNotFound}
	ErrDocumentExists   = &AppError{Code: "DOCUMENT_EXISTS", Message: "Asset already has a document attached", StatusCode: http.StatusConflict}
	ErrFileTooLarge     = &AppError{Code: "FILE_TOO_LARGE", Message: "Uploaded file exceeds the size limit", StatusCode: http.StatusRequestEntityTooLarge}
	ErrUnsupportedFile  = &AppError{Code: "UNSUPPORTED_FILE", Message: "Only PDF and image files are accepted", StatusCode: http.StatusBadRequest}
)

// Bank directory errors.
var (
	ErrIFSCNotFound = &AppError{Code: "IFSC_NOT_FOUND", Message: "No branch found for this IFSC code", StatusCode: http.StatusNotFound}
	ErrInvalidIFSC  = &AppError{Code: "INVALID_IFSC", Message: "Invalid IFSC code format", StatusCode: http.StatusBadRequest}
)

// Wizard errors.
var (
	ErrWizardNotFound = &AppError{Code: "WIZARD_NOT_FOUND", Message: "Wizard session not found or expired", StatusCode: http.StatusNotFound}
	ErrWizardStep     = &AppError{Code: "WIZARD_STEP", Message: "Operation not valid in the current wizard step", StatusCode: http.StatusConflict}
)
