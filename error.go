package sitescan

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EINTERNAL = "internal"

	// ENAVIGATION is fatal: the target page could not be loaded.
	ENAVIGATION = "navigation"
	// EANALYSIS is fatal: the DOM tree could not be serialized.
	EANALYSIS = "analysis"
	// ECAPTURE marks a single screenshot or HTML snippet that was skipped.
	ECAPTURE = "capture"
	// EASSET marks a single asset that could not be downloaded.
	EASSET = "asset"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sitescan error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// IsFatal reports whether err should abort a scrape.
func IsFatal(err error) bool {
	switch ErrorCode(err) {
	case "", ECAPTURE, EASSET:
		return false
	}
	return true
}
