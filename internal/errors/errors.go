// Package errors defines the stable error code system for conf2wiki.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Code is a stable error code string.
type Code string

// Error codes. Stable public contract: wrapper scripts may match on these.
const (
	EUsage    Code = "E_USAGE"
	EInternal Code = "E_INTERNAL"

	// Configuration error codes
	EInvalidConfig Code = "E_INVALID_CONFIG"

	// Export precondition error codes
	ESplunkBinNotFound Code = "E_SPLUNK_BIN_NOT_FOUND" // splunk binary missing at configured path
	EBtoolFailed       Code = "E_BTOOL_FAILED"         // btool exited non-zero
	EBtoolTimeout      Code = "E_BTOOL_TIMEOUT"        // btool exceeded the invocation timeout
	ETemplateNotFound  Code = "E_TEMPLATE_NOT_FOUND"   // template file missing
	ETemplateInvalid   Code = "E_TEMPLATE_INVALID"     // template failed to parse
	EExportDirFailed   Code = "E_EXPORT_DIR_FAILED"    // export directory could not be created

	// Upload precondition error codes
	EExportDirMissing Code = "E_EXPORT_DIR_MISSING" // export directory does not exist
	ETokenMissing     Code = "E_TOKEN_MISSING"      // Wiki.js API token not configured
	EIndexFetchFailed Code = "E_INDEX_FETCH_FAILED" // remote page index could not be fetched
	EWikiRequest      Code = "E_WIKI_REQUEST"       // transport or GraphQL failure on a wiki call
	EWikiRejected     Code = "E_WIKI_REJECTED"      // wiki responseResult reported a failure
)

// Conf2WikiError is the standard error type for conf2wiki errors.
type Conf2WikiError struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *Conf2WikiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Conf2WikiError) Unwrap() error {
	return e.Cause
}

// ExitCodeError wraps an error with an explicit process exit code.
type ExitCodeError struct {
	Err  error
	Code int
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

func (e *ExitCodeError) ExitCode() int {
	return e.Code
}

// WithExitCode wraps err with a specific process exit code.
func WithExitCode(err error, code int) error {
	return &ExitCodeError{Err: err, Code: code}
}

// New creates a new Conf2WikiError with the given code and message.
func New(code Code, msg string) error {
	return &Conf2WikiError{Code: code, Msg: msg}
}

// NewWithDetails creates a new Conf2WikiError with code, message, and details.
// Details map is defensively copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &Conf2WikiError{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new Conf2WikiError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &Conf2WikiError{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new Conf2WikiError wrapping an underlying error with details.
// Details map is defensively copied (nil if empty).
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &Conf2WikiError{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not a Conf2WikiError.
func GetCode(err error) Code {
	var ce *Conf2WikiError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// AsConf2WikiError returns (*Conf2WikiError, true) if err is or wraps a Conf2WikiError.
func AsConf2WikiError(err error) (*Conf2WikiError, bool) {
	var ce *Conf2WikiError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// copyDetails returns a defensive copy of the details map, or nil if empty/nil.
func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the appropriate exit code for an error.
// Returns 0 if err is nil, 2 for E_USAGE, 1 for all other errors.
// Per-document failures never reach this path; only fatal precondition
// errors propagate out of commands.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ec, ok := err.(interface{ ExitCode() int }); ok {
		return ec.ExitCode()
	}
	if GetCode(err) == EUsage {
		return 2
	}
	return 1
}

// Print writes the error to w in the stable stderr format:
//
//	error_code: <CODE>
//	<message>
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	var ce *Conf2WikiError
	if errors.As(err, &ce) {
		_, _ = fmt.Fprintf(w, "error_code: %s\n", ce.Code)
		_, _ = fmt.Fprintln(w, ce.Msg)
	} else {
		// Fallback for non-Conf2WikiError errors (should not happen in practice)
		_, _ = fmt.Fprintln(w, err.Error())
	}
}
