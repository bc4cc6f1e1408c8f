package services

import (
	"errors"
	"fmt"
)

// Error categories. Every rule-specific error below matches exactly one of
// them through errors.Is, so callers can branch on the category alone.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

var (
	ErrUserNotFound       = notFoundError("user not found")
	ErrProjectNotFound    = notFoundError("project not found")
	ErrTechnologyNotFound = notFoundError("technology not found")
	ErrTaskNotFound       = notFoundError("task not found")
	ErrInvoiceNotFound    = notFoundError("invoice not found")
	ErrTimeEntryNotFound  = notFoundError("time entry not found")
	ErrAssigneeNotFound   = notFoundError("assignee not found")
	ErrCallerNotFound     = notFoundError("calling user not found")
)

// classifiedError is a rule-specific error carrying its category
type classifiedError struct {
	category error
	msg      string
}

func (e *classifiedError) Error() string {
	return e.msg
}

func (e *classifiedError) Is(target error) bool {
	return target == e.category
}

func notFoundError(msg string) error {
	return &classifiedError{category: ErrNotFound, msg: msg}
}

func validationError(msg string) error {
	return &classifiedError{category: ErrValidation, msg: msg}
}

func validationErrorf(format string, args ...any) error {
	return validationError(fmt.Sprintf(format, args...))
}
