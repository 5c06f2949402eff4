package validate

import (
	"net/http"

	"github.com/okian/primecheck/internal/domain/types"
)

// Category labels a rejected request. The label is sent as the "error" field.
type Category string

// Error categories.
const (
	CategoryMissingParameter Category = "MissingParameter"
	CategoryInvalidFormat    Category = "InvalidFormat"
	CategoryValidationError  Category = "ValidationError"
	CategoryNegativeInput    Category = "NegativeInput"
	CategoryTooLarge         Category = "TooLarge"
	CategoryInternalError    Category = "InternalError"
)

// Fixed user-facing messages.
const (
	msgMissingParameter = `Please provide a "number" query parameter`
	msgInvalidFormat    = `"%s" is not a valid integer`
	msgValidationError  = "Invalid input data"
	msgNegativeInput    = "Number must be non-negative"
	msgTooLarge         = "Number must not exceed 10^12 for performance reasons"
	msgInternalError    = "An unexpected error occurred"
)

// Field-level detail messages for the body path.
const (
	detailRequired   = "This field is required."
	detailNull       = "This field may not be null."
	detailNotInteger = "A valid integer is required."
	detailMin        = "Ensure this value is greater than or equal to 0."
	detailMax        = "Ensure this value is less than or equal to 1000000000000."
	detailMalformed  = "JSON parse error - %s"
	detailNotObject  = "Invalid data. Expected a JSON object."
	detailTooLarge   = "Request body exceeds %d bytes."
)

// Status returns the HTTP status code a category maps to.
func (c Category) Status() int {
	if c == CategoryInternalError {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// Error is a categorized validation failure.
type Error struct {
	Category Category
	Message  string
	Details  map[string][]string
}

func (e *Error) Error() string {
	return string(e.Category) + ": " + e.Message
}

// Response converts the error to its wire shape.
func (e *Error) Response() types.ErrorResponse {
	return types.ErrorResponse{
		Error:   string(e.Category),
		Message: e.Message,
		Details: e.Details,
	}
}

// Internal returns the generic error used for unexpected failures. It never
// carries the underlying cause.
func Internal() *Error {
	return &Error{Category: CategoryInternalError, Message: msgInternalError}
}

func newError(c Category, msg string) *Error {
	return &Error{Category: c, Message: msg}
}

func fieldError(field, detail string) *Error {
	return &Error{
		Category: CategoryValidationError,
		Message:  msgValidationError,
		Details:  map[string][]string{field: {detail}},
	}
}
