package service

import "fmt"

// ErrorKind classifies every error the services hand to the HTTP layer. The
// handler package owns the single mapping from kind to status code, so all
// routes respond identically to the same kind.
type ErrorKind int

const (
	// KindValidation is malformed or missing input; the message names the
	// first failing rule.
	KindValidation ErrorKind = iota
	// KindAuthentication is an unknown email or wrong password. The message
	// is deliberately generic so the response never reveals which.
	KindAuthentication
	// KindConflict is a duplicate email on signup.
	KindConflict
	// KindInfrastructure is a database or hashing failure. The message shown
	// to the visitor is generic; the cause is logged, not rendered.
	KindInfrastructure
)

// Error is the typed error all service operations return.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func conflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func authenticationError() *Error {
	return &Error{Kind: KindAuthentication, Message: "Invalid email or password"}
}

func infrastructureError(cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: "Something went wrong, please try again", cause: cause}
}
