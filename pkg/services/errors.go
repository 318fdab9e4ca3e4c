// Package services provides standardized error types for service layer operations.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qubeflow/qubeflow/pkg/validation"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidSortOrder     = errors.New("invalid sort order")
	ErrInvalidStatus        = errors.New("invalid workflow status")
	ErrEmptyOwnerID         = errors.New("owner ID cannot be empty")
	ErrWorkflowNameRequired = errors.New("workflow name is required")
	ErrWorkflowNil          = errors.New("workflow cannot be nil")
	ErrUnknownNodeType      = errors.New("unknown node type")
	ErrInvalidNodeConfig    = errors.New("invalid node config")

	// Lookup Errors (404 Not Found).
	ErrNodeNotFound    = errors.New("node not found")
	ErrEdgeNotFound    = errors.New("edge not found")
	ErrVersionNotFound = errors.New("version not found")

	// Business Logic Conflicts (409 Conflict).
	ErrCannotModifyActive = errors.New("cannot modify active workflow")
	ErrDuplicateNodeID    = errors.New("node id already exists in workflow")
	ErrDuplicateEdgeID    = errors.New("edge id already exists in workflow")
	ErrVersionAlreadyLive = errors.New("version is already live")
	ErrCannotArchiveLive  = errors.New("cannot archive the live version")
	ErrVersionStale       = errors.New("workflow graph changed since the version was created")

	// ErrValidationFailed is returned when an operation needs a valid workflow graph
	// (422 Unprocessable Entity).
	ErrValidationFailed = errors.New("workflow validation failed")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WorkflowInvalidError carries the validation result that blocked an operation.
type WorkflowInvalidError struct {
	WorkflowID string
	Result     validation.Result
}

func (e *WorkflowInvalidError) Error() string {
	codes := make([]string, 0, len(e.Result.Issues))
	for _, code := range e.Result.Codes() {
		codes = append(codes, string(code))
	}

	return fmt.Sprintf("workflow %s has %d validation issue(s): %s",
		e.WorkflowID, len(e.Result.Issues), strings.Join(codes, ", "))
}

func (e *WorkflowInvalidError) Is(target error) bool {
	return target == ErrValidationFailed
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidSortField) ||
		errors.Is(err, ErrInvalidSortOrder) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrEmptyOwnerID) ||
		errors.Is(err, ErrWorkflowNameRequired) ||
		errors.Is(err, ErrWorkflowNil) ||
		errors.Is(err, ErrUnknownNodeType) ||
		errors.Is(err, ErrInvalidNodeConfig)
}

// IsNotFoundError checks if an error should return HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound) ||
		errors.Is(err, ErrNodeNotFound) ||
		errors.Is(err, ErrEdgeNotFound) ||
		errors.Is(err, ErrVersionNotFound)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrCannotModifyActive) ||
		errors.Is(err, ErrDuplicateNodeID) ||
		errors.Is(err, ErrDuplicateEdgeID) ||
		errors.Is(err, ErrVersionAlreadyLive) ||
		errors.Is(err, ErrCannotArchiveLive) ||
		errors.Is(err, ErrVersionStale)
}
