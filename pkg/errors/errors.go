package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeInvalidToken       Code = "INVALID_TOKEN"
	CodeExpiredToken       Code = "EXPIRED_TOKEN"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeUnknownCourse      Code = "UNKNOWN_COURSE"
	CodeDuplicateIdentity  Code = "DUPLICATE_IDENTITY"
	CodeConflict           Code = "CONFLICT"
	CodeStateConflict      Code = "STATE_CONFLICT"
	CodeIdempotency        Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRateLimit          Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeDependency         Code = "DEPENDENCY_ERROR"
)

// authFailureMessage is shared by every credential and token failure so a
// caller cannot tell which half of a login attempt was wrong.
const authFailureMessage = "invalid credentials"

type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
	// MessageOverridable lets the error's own message replace PublicMessage in responses.
	MessageOverridable bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:         http.StatusBadRequest,
		PublicMessage:      "validation failed",
		DetailsAllowed:     true,
		MessageOverridable: true,
	},
	CodeUnauthorized: {
		HTTPStatus:         http.StatusUnauthorized,
		PublicMessage:      "authentication required",
		MessageOverridable: true,
	},
	CodeInvalidCredentials: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: authFailureMessage,
	},
	CodeInvalidToken: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: authFailureMessage,
	},
	CodeExpiredToken: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: authFailureMessage,
	},
	CodeForbidden: {
		HTTPStatus:         http.StatusForbidden,
		PublicMessage:      "access denied",
		MessageOverridable: true,
	},
	CodeNotFound: {
		HTTPStatus:         http.StatusNotFound,
		PublicMessage:      "resource not found",
		MessageOverridable: true,
	},
	CodeUnknownCourse: {
		HTTPStatus:         http.StatusUnprocessableEntity,
		PublicMessage:      "unknown course",
		DetailsAllowed:     true,
		MessageOverridable: true,
	},
	CodeDuplicateIdentity: {
		HTTPStatus:    http.StatusConflict,
		PublicMessage: "email already registered",
	},
	CodeConflict: {
		HTTPStatus:         http.StatusConflict,
		PublicMessage:      "conflict detected",
		MessageOverridable: true,
	},
	CodeStateConflict: {
		HTTPStatus:         http.StatusUnprocessableEntity,
		PublicMessage:      "state transition disallowed",
		DetailsAllowed:     true,
		MessageOverridable: true,
	},
	CodeIdempotency: {
		HTTPStatus:         http.StatusConflict,
		PublicMessage:      "idempotency key reused",
		DetailsAllowed:     true,
		MessageOverridable: true,
	},
	CodeRateLimit: {
		HTTPStatus:         http.StatusTooManyRequests,
		PublicMessage:      "rate limit exceeded",
		MessageOverridable: true,
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		Retryable:     true,
		PublicMessage: "internal server error",
	},
	CodeDependency: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "dependency unavailable",
		DetailsAllowed: true,
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

// CodeOf returns the code carried by err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// IsCode reports whether err carries the provided code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
