package errors

import "fmt"

type RequestError struct {
	Message     string
	Description error
	Type        string
}

func NewRequestError(reason string, description error, errorType string) *RequestError {
	return &RequestError{
		Message:     reason,
		Description: description,
		Type:        errorType,
	}
}

// Raised when a verb outside the supported set is passed to SetMethod.
func NewInvalidVerbError(verb string) *RequestError {
	return NewRequestError(fmt.Sprintf("invalid verb: %s", verb), nil, "InvalidVerbError")
}

// Raised when configuration is mutated after the request was opened.
func NewAlreadyOpenError(method string, url string) *RequestError {
	return NewRequestError(fmt.Sprintf("request is already open: %s %s", method, url), nil, "AlreadyOpenError")
}

// Raised when the request is sent before being opened.
func NewNotOpenError() *RequestError {
	return NewRequestError("request is not open", nil, "NotOpenError")
}

// Raised when a listener is registered for an unknown event.
func NewInvalidEventError(event string) *RequestError {
	return NewRequestError(fmt.Sprintf("invalid event: %s", event), nil, "InvalidEventError")
}

// Raised when a listener is registered for an event the builder does not support.
func NewNotImplementedError(event string) *RequestError {
	return NewRequestError(fmt.Sprintf("event not implemented: %s", event), nil, "NotImplementedError")
}

// Raised by the underlying handle on lifecycle misuse.
func NewInvalidStateError(reason string, description error) *RequestError {
	return NewRequestError(reason, description, "InvalidStateError")
}

func (e *RequestError) Err() error {
	return e
}

func (e *RequestError) Error() string {
	return e.Message
}
