package domain

import (
	"errors"
	"fmt"
	"strings"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError reports bad input. Missing and Invalid list field names.
type ValidationError struct {
	Field   string
	Msg     string
	Missing []string
	Invalid []string
	Err     error
}

func (e ValidationError) Error() string {
	switch {
	case len(e.Missing) > 0 && len(e.Invalid) > 0:
		return fmt.Sprintf("missing required fields: %s; invalid fields: %s",
			strings.Join(e.Missing, ", "), strings.Join(e.Invalid, ", "))
	case len(e.Missing) > 0:
		return "missing required fields: " + strings.Join(e.Missing, ", ")
	case len(e.Invalid) > 0:
		return "invalid fields: " + strings.Join(e.Invalid, ", ")
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// StateError means the record exists but is not in the state the caller expects.
type StateError struct {
	Resource string
	Current  string
	Msg      string
}

func (e StateError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s is %s", e.Resource, e.Current)
}

// ConfigError means an integration has no credentials configured.
type ConfigError struct {
	Service string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Service)
}

// UpstreamError carries a failed third-party response for diagnosis.
type UpstreamError struct {
	Service      string
	StatusCode   int
	ResponseCode string
	Body         string
	IPNotAllowed bool
	Err          error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s request failed", e.Service)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (http %d)", e.StatusCode)
	}
	if e.ResponseCode != "" {
		msg += " responseCode=" + e.ResponseCode
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Hint gives operators an actionable next step when one is known.
func (e *UpstreamError) Hint() string {
	if e.IPNotAllowed {
		return fmt.Sprintf("%s rejected this server's IP address; ask %s support to whitelist the server's public IP", e.Service, e.Service)
	}
	return ""
}

type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg == "" {
		return "forbidden"
	}
	return e.Msg
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

// AsValidation extracts a ValidationError from err.
func AsValidation(err error) (ValidationError, bool) {
	var target ValidationError
	if errors.As(err, &target) {
		return target, true
	}
	return ValidationError{}, false
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsState(err error) bool {
	var target StateError
	return errors.As(err, &target)
}

func IsConfig(err error) bool {
	var target ConfigError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

// AsUpstream extracts an *UpstreamError from err.
func AsUpstream(err error) (*UpstreamError, bool) {
	var target *UpstreamError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
