package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an error so transport layers can map it to a response
// without inspecting message text.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindValidation    Kind = "validation"
	KindUpstream      Kind = "upstream"
	KindMalformedData Kind = "malformed_data"
	KindNotFound      Kind = "not_found"
	KindInternal      Kind = "internal"
)

// Error is the single error type used across the pipeline. It wraps an
// optional cause and carries the kind plus an optional field name for
// validation failures.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Configuration reports a missing or unusable credential/setting.
func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// Validation reports invalid caller input for a specific field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Field: field}
}

// Upstream reports a transport or status failure from a provider.
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// UpstreamStatus reports a non-success provider status with the raw body
// kept for diagnostics.
func UpstreamStatus(provider string, status int, body string) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: fmt.Sprintf("%s API error: %d - %s", provider, status, body),
	}
}

// MalformedData reports an upstream payload whose shape is not usable.
func MalformedData(message string, err error) *Error {
	return &Error{Kind: KindMalformedData, Message: message, Err: err}
}

// NotFound reports an unknown tool or resource name.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf classifies any error. Errors outside this package are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// FieldOf returns the field name for validation errors, "" otherwise.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// HTTPStatus maps an error kind to the status code the HTTP transport uses.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindNotFound:
		return http.StatusBadRequest
	case KindConfiguration, KindUpstream, KindMalformedData:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Hint returns a remediation hint for the narrative transport. The
// structured transport never includes these.
func Hint(kind Kind) string {
	switch kind {
	case KindConfiguration:
		return "Check that the provider credentials are set in the environment."
	case KindValidation:
		return "Check the request arguments and retry."
	case KindUpstream:
		return "Check network connectivity, provider status and remaining API quota."
	case KindMalformedData:
		return "The provider returned an unexpected payload shape; inspect the raw response."
	case KindNotFound:
		return "Check the tool or resource name against the catalog."
	default:
		return "Unexpected failure; check the server logs."
	}
}
