package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Issue is one field-level validation problem. Path holds field names and
// array indexes leading to the offending value, e.g. ["trips", 2, "mode"].
type Issue struct {
	Code    string `json:"code"`
	Path    []any  `json:"path"`
	Message string `json:"message"`
}

// PathString renders the path as "trips.2.mode".
func (i Issue) PathString() string {
	parts := make([]string, 0, len(i.Path))
	for _, p := range i.Path {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

const (
	IssueInvalidType      = "invalid_type"
	IssueInvalidEnumValue = "invalid_enum_value"
	IssueTooSmall         = "too_small"
	IssueInvalidString    = "invalid_string"
	IssueInvalidJSON      = "invalid_json"
	IssueCustom           = "custom"
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

// ValidationError rejects a whole payload. Issues carries every problem found,
// not only the first one.
type ValidationError struct {
	Msg    string
	Issues []Issue
	Err    error
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if len(e.Issues) > 0 {
		first := e.Issues[0]
		if p := first.PathString(); p != "" {
			return fmt.Sprintf("%s: %s", p, first.Message)
		}
		return first.Message
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

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

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// IssuesOf returns the issues attached to a ValidationError anywhere in err's chain.
func IssuesOf(err error) []Issue {
	var target ValidationError
	if errors.As(err, &target) {
		return target.Issues
	}
	return nil
}
