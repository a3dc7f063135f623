package restcall

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors, raised at declaration time.
const (
	CodeInvalidRule       ErrorCode = "invalid_rule"
	CodeInvalidVerbRule   ErrorCode = "invalid_verb_rule"
	CodeInvalidCall       ErrorCode = "invalid_call"
	CodeDuplicateCall     ErrorCode = "duplicate_call"
	CodeAlreadyRegistered ErrorCode = "already_registered"
)

// Resolution errors, raised while planning a request. Planning is fail-fast:
// a resolution error always occurs before anything is sent.
const (
	CodeUnknownCall     ErrorCode = "unknown_call"
	CodeMissingURLParam ErrorCode = "missing_url_param"
	CodeBodyForbidden   ErrorCode = "body_forbidden"
	CodeUnknownPayload  ErrorCode = "unknown_payload_type"
	CodeBadDocument     ErrorCode = "bad_document"
)

// Error is the standard error envelope for configuration and resolution
// failures. Transport and decode errors are propagated as-is, never wrapped
// in an Error.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// missingParamsError reports every unresolved placeholder name in one error,
// so callers can fix their argument bag in a single round trip.
func missingParamsError(names []string) *Error {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return Errorf(CodeMissingURLParam, "missing URL parameter(s): %s", strings.Join(sorted, ", ")).
		WithDetail("params", sorted)
}
