package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Validation, reported before any network call.
	ErrEmptyBody          = fmt.Errorf("message body is empty")
	ErrNoCounterpart      = fmt.Errorf("no counterpart selected")
	ErrInvalidAccount     = fmt.Errorf("invalid account")
	ErrInvalidEvent       = fmt.Errorf("invalid event details")
	ErrEmptyService       = fmt.Errorf("service is empty")
	ErrUnsupportedKind    = fmt.Errorf("unsupported account kind")
	ErrNoProviderSelected = fmt.Errorf("no provider selected for the event")

	// Transport.
	ErrSendFailed       = fmt.Errorf("message was not sent")
	ErrUnexpectedStatus = fmt.Errorf("unexpected status code")

	// Accounts and session.
	ErrInvalidCredentials     = fmt.Errorf("invalid credentials")
	ErrEmailAlreadyRegistered = fmt.Errorf("email already registered")
	ErrAccountNotFound        = fmt.Errorf("account not found")
	ErrNoProfile              = fmt.Errorf("no profile stored, please login")
)
