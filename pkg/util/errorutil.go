package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures along the submission pipeline.
type Kind string

const (
	// KindValidation marks user-correctable input defects; they never reach the network.
	KindValidation Kind = "VALIDATION"
	// KindClient marks incomplete or malformed payloads rejected by the endpoint.
	KindClient Kind = "CLIENT"
	// KindPersistence marks failures reported by the database insert.
	KindPersistence Kind = "PERSISTENCE"
	// KindTransport marks network-level or otherwise unexpected failures.
	KindTransport Kind = "TRANSPORT"
)

// GenericFailureMessage is surfaced when a failure carries no message of its own.
const GenericFailureMessage = "something went wrong, please try again"

// DomainError standardizes application errors with an explicit kind.
type DomainError struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a field-level input defect.
func NewValidationError(message string) error {
	return &DomainError{Kind: KindValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NewClientError reports an incomplete payload reaching the endpoint.
func NewClientError(message string) error {
	return &DomainError{Kind: KindClient, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NewPersistenceError wraps a failed database insert.
func NewPersistenceError(err error) error {
	message := GenericFailureMessage
	if err != nil {
		message = err.Error()
	}
	return &DomainError{Kind: KindPersistence, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// NewTransportError wraps a network-level or unexpected failure.
func NewTransportError(err error) error {
	message := GenericFailureMessage
	if err != nil {
		message = err.Error()
	}
	return &DomainError{Kind: KindTransport, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// ToDomainError coerces arbitrary errors so catch-all boundaries stay deliberate.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Kind:       KindTransport,
		Message:    err.Error(),
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
