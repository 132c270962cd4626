package failure

import (
	"errors"
	"net/http"
)

// Reason is a machine-readable classification a caller can branch on,
// e.g. offering alternative slots on a conflict instead of a form error.
type Reason string

const (
	ReasonValidation      Reason = "validation"
	ReasonPolicyViolation Reason = "policy_violation"
	ReasonConflict        Reason = "conflict"
	ReasonNotFound        Reason = "not_found"
	ReasonPersistence     Reason = "persistence"
	ReasonUnauthorized    Reason = "unauthorized"
	ReasonForbidden       Reason = "forbidden"
	ReasonInternal        Reason = "internal"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  Reason `json:"reason,omitempty"`
	cause   error
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions", Reason: ReasonForbidden}

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Reason:  ReasonValidation,
			cause:   err,
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Reason:  ReasonValidation,
	}
}

// Validation is a malformed or inverted window, or a request outside operating hours.
func Validation(msg string) error {
	return BadRequestFromString(msg)
}

// PolicyViolation reports a breached booking policy such as the daily limit.
func PolicyViolation(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
		Reason:  ReasonPolicyViolation,
	}
}

func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
		Reason:  ReasonUnauthorized,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
			Reason:  ReasonInternal,
			cause:   err,
		}
	}

	return nil
}

// Persistence wraps a store error. It is surfaced to the caller and never retried here.
func Persistence(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: "storage unavailable",
			Reason:  ReasonPersistence,
			cause:   err,
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
		Reason:  ReasonNotFound,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
		Reason:  ReasonConflict,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
		Reason:  ReasonForbidden,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the reason of an error interface, internal when unclassified.
func GetReason(err error) Reason {
	var fail *Failure
	if errors.As(err, &fail) && fail.Reason != "" {
		return fail.Reason
	}

	return ReasonInternal
}

// Is reports whether err carries the given reason.
func Is(err error, reason Reason) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Reason == reason
}
