package barid

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrInvalidEmail indicates the inbox address is not a well-formed email address
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrMalformedResponse indicates the service broke its response contract,
	// e.g. success without a result or failure without an error
	ErrMalformedResponse = errors.New("malformed server response")

	// ErrValidation matches any *ValidationError via errors.Is
	ErrValidation = errors.New("invalid input")
	// ErrDomain matches any *DomainError via errors.Is
	ErrDomain = errors.New("domain not supported")
	// ErrNotFound matches any *NotFoundError via errors.Is
	ErrNotFound = errors.New("not found")
)

// notFoundName is the error name the service uses for missing resources.
const notFoundName = "NotFound"

// ValidationError is returned when the service rejects the input,
// for both email addresses and inbox IDs.
type ValidationError struct {
	Name    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DomainError is returned when the inbox address uses a domain the service
// does not accept. SupportedDomains lists the domains that are accepted.
type DomainError struct {
	Name             string
	Message          string
	SupportedDomains []string
}

func (e *DomainError) Error() string {
	if len(e.SupportedDomains) == 0 {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("%s: %s (supported domains: %s)", e.Name, e.Message, strings.Join(e.SupportedDomains, ", "))
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// NotFoundError is returned when a message, inbox or attachment ID does not exist.
type NotFoundError struct {
	Name    string
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TransportError wraps failures below the API contract: connection errors,
// unreadable bodies and bodies that are not the expected JSON.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func messageNotFound() error {
	return &NotFoundError{Name: notFoundName, Message: "Email not found"}
}

func attachmentNotFound() error {
	return &NotFoundError{Name: notFoundName, Message: "Attachment not found"}
}
