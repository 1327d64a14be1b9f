package models

import (
	"errors"
)

const (
	MsgUnknownFailure      = "operation failed"
	MsgConnectionFailed    = "Connection failed"
	MsgInvalidFilter       = "Invalid filter"
	MsgDocumentNotFound    = "Document not found"
	MsgValidationFailed    = "Validation failed"
	MsgConnectionSucceeded = "Connection successful"
)

// ErrorKind classifies failures so callers can map them to user-facing messages.
type ErrorKind string

const (
	ErrKindConnection  ErrorKind = "connection"
	ErrKindFilterParse ErrorKind = "filter_parse"
	ErrKindNotFound    ErrorKind = "not_found"
	ErrKindOperation   ErrorKind = "operation"
	ErrKindValidation  ErrorKind = "validation"
)

// ConnectionReason tells apart the ways establishing a connection can fail.
type ConnectionReason string

const (
	ReasonInvalidURI     ConnectionReason = "invalid_uri"
	ReasonUnreachable    ConnectionReason = "unreachable"
	ReasonAuthentication ConnectionReason = "authentication"
	ReasonNetwork        ConnectionReason = "network"
)

// Error is the error type returned across the service boundary.
type Error struct {
	Kind    ErrorKind
	Reason  ConnectionReason
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return e.Message + ": " + e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewConnectionError reports a failure to establish or use a connection.
func NewConnectionError(reason ConnectionReason, err error) *Error {
	return &Error{Kind: ErrKindConnection, Reason: reason, Message: MsgConnectionFailed, Err: err}
}

// NewFilterParseError reports a filter that is not a valid JSON object.
func NewFilterParseError(err error) *Error {
	return &Error{Kind: ErrKindFilterParse, Message: MsgInvalidFilter, Err: err}
}

// NewNotFoundError reports a missing mutation target.
func NewNotFoundError(message string) *Error {
	if message == "" {
		message = MsgDocumentNotFound
	}
	return &Error{Kind: ErrKindNotFound, Message: message}
}

// NewOperationError wraps any other driver failure.
func NewOperationError(message string, err error) *Error {
	return &Error{Kind: ErrKindOperation, Message: message, Err: err}
}

// NewValidationError reports bad input caught before any driver call.
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrKindValidation, Message: message}
}

// KindOf returns the kind of err, or ErrKindOperation for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindOperation
}

// ReasonOf returns the connection reason carried by err, if any.
func ReasonOf(err error) ConnectionReason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
