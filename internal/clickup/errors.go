package clickup

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable matches every transport or non-2xx failure of the ClickUp API.
	ErrUpstreamUnavailable = errors.New("clickup API unavailable")

	// ErrWorkspaceNotFound is returned when no workspace has the configured name.
	ErrWorkspaceNotFound = errors.New("clickup workspace not found")

	// ErrNoDestinationList is returned when a space has no list anywhere in its hierarchy.
	ErrNoDestinationList = errors.New("no list found in the selected space")

	// ErrTaskCreationFailed matches *TaskCreationError.
	ErrTaskCreationFailed = errors.New("could not create the task in clickup")

	// ErrSprintMoveFailed is logged when a created task cannot be placed in its sprint.
	// It never surfaces from CreateTask.
	ErrSprintMoveFailed = errors.New("could not move the task to the sprint")
)

// APIError is a non-2xx response from ClickUp.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	// Message is the "err" (or "error") field of the response body, if any.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("clickup API error (%d) on %s %s: %s", e.StatusCode, e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("clickup API error (%d) on %s %s", e.StatusCode, e.Method, e.Path)
}

// Is reports ErrUpstreamUnavailable so callers need not care about the status.
func (e *APIError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// TaskCreationError wraps any failure of CreateTask before the task exists:
// resolving the destination list or POST /list/{id}/task. ListID is empty
// when resolution failed.
type TaskCreationError struct {
	ListID string
	Err    error
}

func (e *TaskCreationError) Error() string {
	if msg := e.UpstreamMessage(); msg != "" {
		return fmt.Sprintf("%s: %s", ErrTaskCreationFailed.Error(), msg)
	}
	return fmt.Sprintf("%s: %v", ErrTaskCreationFailed.Error(), e.Err)
}

func (e *TaskCreationError) Unwrap() error { return e.Err }

func (e *TaskCreationError) Is(target error) bool {
	return target == ErrTaskCreationFailed
}

// UpstreamMessage is ClickUp's own error text, when it sent one.
func (e *TaskCreationError) UpstreamMessage() string {
	var apiErr *APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsNotFound reports whether err is a 404 from ClickUp.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsUnauthorized reports whether ClickUp rejected the token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}
