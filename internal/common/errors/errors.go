package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups rejection codes by who is at fault and how they are handled
type Kind int

const (
	// KindPolicy covers type, extension and size violations
	KindPolicy Kind = iota + 1
	// KindSecurity covers CSRF failures and content flagged by the scanner
	KindSecurity
	// KindIO covers storage failures while persisting or removing files
	KindIO
	// KindRequest covers malformed or oversized requests
	KindRequest
	// KindNotFound is returned when a stored file does not exist
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindPolicy:
		return "policy"
	case KindSecurity:
		return "security"
	case KindIO:
		return "io"
	case KindRequest:
		return "request"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Code is a machine-readable rejection reason
type Code string

// Rejection codes
const (
	CodeCSRFRequired       Code = "CSRF_REQUIRED"
	CodeDangerousExtension Code = "DANGEROUS_EXTENSION"
	CodeUnsupportedType    Code = "UNSUPPORTED_FILE_TYPE"
	CodeFileTooLarge       Code = "FILE_TOO_LARGE"
	CodeExtensionMismatch  Code = "EXTENSION_MISMATCH"
	CodeMalwareDetected    Code = "MALWARE_DETECTED"
	CodeTooManyFiles       Code = "TOO_MANY_FILES"
	CodeRequestTooLarge    Code = "REQUEST_TOO_LARGE"
	CodeInvalidMultipart   Code = "INVALID_MULTIPART"
	CodeNoFiles            Code = "NO_FILES"
	CodeProcessingFailed   Code = "FILE_PROCESSING_FAILED"
	CodeFileNotFound       Code = "FILE_NOT_FOUND"
	CodeInvalidName        Code = "INVALID_FILENAME"
	CodeInvalidRequest     Code = "INVALID_REQUEST"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// Error is a typed rejection carrying the HTTP status it maps to
type Error struct {
	Kind    Kind   `json:"-"`
	Code    Code   `json:"code"`
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new error with the given kind, code and message
func New(kind Kind, code Code, message string) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Status:  statusFor(kind, code),
		Message: message,
	}
}

// Newf creates a new error with a formatted message
func Newf(kind Kind, code Code, format string, args ...interface{}) *Error {
	return New(kind, code, fmt.Sprintf(format, args...))
}

// Wrap attaches a cause to a new error
func Wrap(err error, kind Kind, code Code, message string) *Error {
	e := New(kind, code, message)
	e.Err = err
	return e
}

// As extracts an *Error from err. Untyped errors become internal errors.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, KindIO, CodeInternal, "Internal server error")
}

// HasKind reports whether err is an *Error of the given kind
func HasKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func statusFor(kind Kind, code Code) int {
	switch code {
	case CodeCSRFRequired:
		return http.StatusForbidden
	case CodeFileTooLarge, CodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeUnsupportedType:
		return http.StatusUnsupportedMediaType
	case CodeMalwareDetected:
		return http.StatusUnprocessableEntity
	}

	switch kind {
	case KindPolicy, KindRequest:
		return http.StatusBadRequest
	case KindSecurity:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is comparisons
var (
	ErrCSRFRequired       = New(KindSecurity, CodeCSRFRequired, "CSRF token validation required for file uploads")
	ErrDangerousExtension = New(KindPolicy, CodeDangerousExtension, "File type not allowed: dangerous extension")
	ErrUnsupportedType    = New(KindPolicy, CodeUnsupportedType, "Unsupported file type")
	ErrFileTooLarge       = New(KindPolicy, CodeFileTooLarge, "File too large")
	ErrExtensionMismatch  = New(KindPolicy, CodeExtensionMismatch, "File extension does not match content type")
	ErrMalwareDetected    = New(KindSecurity, CodeMalwareDetected, "Malicious content detected")
	ErrTooManyFiles       = New(KindRequest, CodeTooManyFiles, "Too many files")
	ErrRequestTooLarge    = New(KindRequest, CodeRequestTooLarge, "Request too large")
	ErrInvalidMultipart   = New(KindRequest, CodeInvalidMultipart, "Invalid multipart form")
	ErrNoFiles            = New(KindRequest, CodeNoFiles, "No files provided")
	ErrProcessingFailed   = New(KindIO, CodeProcessingFailed, "File processing failed")
	ErrFileNotFound       = New(KindNotFound, CodeFileNotFound, "File not found")
	ErrInvalidName        = New(KindRequest, CodeInvalidName, "Invalid file name")
)
