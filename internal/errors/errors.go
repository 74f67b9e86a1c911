// Package errors defines typed errors with categories for user-friendly reporting.
// Callers branch on Kind rather than on the text of a message, so every failure
// surfaced by the REST client or the configuration layer carries an explicit
// category alongside the human-readable description.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ConfigMissing indicates that one or more required settings are absent.
	ConfigMissing Kind = "config_missing"
	// ConfigInvalid indicates a setting is present but malformed.
	ConfigInvalid Kind = "config_invalid"
	// Unauthorized indicates the service rejected the URL/key pair.
	Unauthorized Kind = "unauthorized"
	// NotFound indicates the requested resource (usually a table) does not exist.
	NotFound Kind = "not_found"
	// Transport indicates the request never produced an HTTP response.
	Transport Kind = "transport"
	// Unknown covers every response that fits no other category.
	Unknown Kind = "unknown"
)

// E wraps an error with kind and human-friendly message.
// Code and Status are filled in when the error came back from the remote service.
type E struct {
	Kind    Kind
	Message string
	Code    string
	Status  int
	Err     error
}

func (e *E) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s (code %s)", msg, e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf reports the Kind of the first *E in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}
