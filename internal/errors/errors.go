// Package errors defines the coded application errors shared by the client.
//
// Every failure that reaches a command is an *Error carrying a Code, so the
// CLI can pick a user-facing message without inspecting error strings.
package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeNotAuthenticated   Code = "NOT_AUTHENTICATED"
	CodeNetwork            Code = "NETWORK_ERROR"
	CodeServer             Code = "SERVER_ERROR"
	CodeMalformedResponse  Code = "MALFORMED_RESPONSE"
	CodeCorruptLocalState  Code = "CORRUPT_LOCAL_STATE"
	CodeOrderSubmission    Code = "ORDER_SUBMISSION_ERROR"
	CodeCheckoutInProgress Code = "CHECKOUT_IN_PROGRESS"
	CodeEmptyCart          Code = "EMPTY_CART"
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInternal           Code = "INTERNAL_ERROR"
)

type Metadata struct {
	Retryable     bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeNotAuthenticated: {
		Retryable:     false,
		PublicMessage: "you need to log in before placing an order",
	},
	CodeNetwork: {
		Retryable:     true,
		PublicMessage: "could not reach the restaurant service",
	},
	CodeServer: {
		Retryable:     true,
		PublicMessage: "the restaurant service rejected the request",
	},
	CodeMalformedResponse: {
		Retryable:     false,
		PublicMessage: "the restaurant service sent an unexpected response",
	},
	CodeCorruptLocalState: {
		Retryable:     false,
		PublicMessage: "local session data was unreadable and has been cleared",
	},
	CodeOrderSubmission: {
		Retryable:     true,
		PublicMessage: "the order could not be placed",
	},
	CodeCheckoutInProgress: {
		Retryable:     true,
		PublicMessage: "an order is already being submitted",
	},
	CodeEmptyCart: {
		Retryable:     false,
		PublicMessage: "the cart is empty",
	},
	CodeValidation: {
		Retryable:     false,
		PublicMessage: "validation failed",
	},
	CodeNotFound: {
		Retryable:     false,
		PublicMessage: "not found",
	},
	CodeInternal: {
		Retryable:     false,
		PublicMessage: "internal error",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	status  int
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Status is the HTTP status that produced the error, or 0 when none did.
func (e *Error) Status() int {
	if e == nil {
		return 0
	}
	return e.status
}

func (e *Error) WithStatus(status int) *Error {
	if e == nil {
		return nil
	}
	e.status = status
	return e
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf returns the outermost code in err's chain, CodeInternal for foreign
// errors and "" for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// Is reports whether err carries code anywhere in its chain.
func Is(err error, code Code) bool {
	for err != nil {
		if typed, ok := err.(*Error); ok && typed.code == code {
			return true
		}
		err = stdErrors.Unwrap(err)
	}
	return false
}
