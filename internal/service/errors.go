package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Not-found errors, surfaced distinctly from validation failures.
var (
	ErrQuestionNotFound           = errors.New("question not found")
	ErrTagNotFound                = errors.New("tag not found")
	ErrInterviewNotFound          = errors.New("interview not found")
	ErrSectionNotFound            = errors.New("interview section not found")
	ErrCandidateInterviewNotFound = errors.New("candidate interview not found")
	ErrResponseNotFound           = errors.New("candidate response not found")
	ErrResultNotFound             = errors.New("interview result not found")
	ErrUserNotFound               = errors.New("user not found")
)

// Integrity and business-rule errors.
var (
	ErrDuplicateAttempt         = errors.New("candidate already has an attempt for this interview")
	ErrDuplicateEmail           = errors.New("a user with this email already exists")
	ErrQuestionAlreadyInSection = errors.New("question is already part of this section")
	ErrSelfDelete               = errors.New("you cannot delete your own account")
	ErrInvalidTransition        = errors.New("invalid attempt status transition")
	ErrParentNotCategory        = errors.New("parent tag is not a category")
	ErrCategoryCycle            = errors.New("category hierarchy must not contain a cycle")
)

// ValidationError carries per-field messages for input that fails shape or
// type-specific rules. Nothing is persisted when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) hasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
